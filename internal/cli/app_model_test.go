package cli

import (
	"context"
	"testing"
	"time"

	"github.com/emirirr/terapi/internal/config"
	"github.com/emirirr/terapi/internal/logging"
	"github.com/emirirr/terapi/internal/notify"
	"github.com/emirirr/terapi/internal/repository"
	"github.com/emirirr/terapi/internal/service"
	"github.com/emirirr/terapi/internal/teatest"
	"github.com/emirirr/terapi/internal/testutil"
	"github.com/emirirr/terapi/internal/timer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestApp wires a full App over an in-memory database with a
// millisecond countdown, so session runs finish within the test.
func newTestApp(t *testing.T) *App {
	t.Helper()

	database := testutil.NewTestDB(t)
	historySvc := service.NewHistoryService(repository.NewSQLiteHistoryRepo(database))
	controller := service.NewSessionController(
		historySvc,
		notify.NewNotifier("", 0),
		logging.Discard(),
		service.WithCountdown(timer.New(timer.WithInterval(time.Millisecond))))

	return &App{
		Auth:          service.NewAuthService(repository.NewSQLiteUserRepo(database)),
		History:       historySvc,
		Controller:    controller,
		Config:        config.Default(t.TempDir()),
		Log:           logging.Discard(),
		IsInteractive: func() bool { return true },
	}
}

// newTestDriver builds a driver around a fresh appModel and returns the
// shared state pointer for assertions.
func newTestDriver(t *testing.T, app *App) (*teatest.Driver, *SharedState) {
	t.Helper()
	model := newAppModel(app)
	state := model.state
	d := teatest.New(t, model,
		teatest.WithSize(100, 30),
		teatest.WaitCmdTimeout(5*time.Second))
	d.DrainInit()
	return d, state
}

// signIn drives the login form with the given credentials.
func signIn(d *teatest.Driver, serial, password string) {
	d.Type(serial)
	d.PressEnter()
	d.Type(password)
	d.PressEnter()
}

func TestApp_StartsAtLogin(t *testing.T) {
	d, state := newTestDriver(t, newTestApp(t))

	assert.Contains(t, d.View(), "SIGN IN")
	assert.Nil(t, state.CurrentUser)
}

func TestApp_RegisterNavigation(t *testing.T) {
	d, _ := newTestDriver(t, newTestApp(t))

	d.PressCtrlR()
	assert.Contains(t, d.View(), "NEW ACCOUNT")

	d.PressEsc()
	assert.Contains(t, d.View(), "SIGN IN")
}

func TestApp_LoginRejectsBadCredentials(t *testing.T) {
	d, state := newTestDriver(t, newTestApp(t))

	signIn(d, "SN404", "nope")

	assert.Contains(t, d.View(), "Invalid serial number or password")
	assert.Nil(t, state.CurrentUser)
}

func TestApp_AdminLoginShowsAdminDashboard(t *testing.T) {
	d, state := newTestDriver(t, newTestApp(t))

	signIn(d, "admin", "admin")

	view := d.View()
	assert.Contains(t, view, "Welcome")
	assert.Contains(t, view, "Registered users")
	require.NotNil(t, state.CurrentUser)
	assert.True(t, state.CurrentUser.IsAdmin())
}

func TestApp_UserDashboardHidesAdminEntries(t *testing.T) {
	app := newTestApp(t)
	_, err := app.Auth.Register(context.Background(), service.RegisterInput{
		Name: "Ada", Surname: "Lovelace", SerialNumber: "SN001", Password: "hunter2",
	})
	require.NoError(t, err)

	d, state := newTestDriver(t, app)
	signIn(d, "SN001", "hunter2")

	view := d.View()
	assert.Contains(t, view, "Start therapy session")
	assert.NotContains(t, view, "Registered users")
	require.NotNil(t, state.CurrentUser)
	assert.False(t, state.CurrentUser.IsAdmin())
}

func TestApp_AdminUsersScreen(t *testing.T) {
	app := newTestApp(t)
	_, err := app.Auth.Register(context.Background(), service.RegisterInput{
		Name: "Ada", Surname: "Lovelace", SerialNumber: "SN001", Password: "hunter2",
	})
	require.NoError(t, err)

	d, _ := newTestDriver(t, app)
	signIn(d, "admin", "admin")

	// Dashboard order: start, history, users, log out.
	d.PressDown()
	d.PressDown()
	d.PressEnter()

	view := d.View()
	assert.Contains(t, view, "Lovelace")
	assert.Contains(t, view, "SN001")
	assert.NotContains(t, view, "$2a$", "digests must never render")
}

func TestApp_Logout(t *testing.T) {
	d, state := newTestDriver(t, newTestApp(t))
	signIn(d, "admin", "admin")
	require.NotNil(t, state.CurrentUser)

	// Last dashboard entry is log out.
	d.PressDown()
	d.PressDown()
	d.PressDown()
	d.PressEnter()

	assert.Contains(t, d.View(), "SIGN IN")
	assert.Nil(t, state.CurrentUser)
}

func TestApp_RegisterThenSignIn(t *testing.T) {
	app := newTestApp(t)
	d, state := newTestDriver(t, app)

	d.PressCtrlR()
	d.Type("Ada")
	d.PressEnter()
	d.Type("Lovelace")
	d.PressEnter()
	d.Type("SN001")
	d.PressEnter()
	d.Type("hunter2")
	d.PressEnter()

	assert.Contains(t, d.View(), "Account created")
	d.PressEnter()
	assert.Contains(t, d.View(), "SIGN IN")

	signIn(d, "SN001", "hunter2")
	require.NotNil(t, state.CurrentUser)
	assert.Equal(t, "Ada Lovelace", state.CurrentUser.FullName())
}

func TestApp_RegisterDuplicateSerialMessage(t *testing.T) {
	app := newTestApp(t)
	_, err := app.Auth.Register(context.Background(), service.RegisterInput{
		Name: "Ada", Surname: "Lovelace", SerialNumber: "SN001", Password: "hunter2",
	})
	require.NoError(t, err)

	d, _ := newTestDriver(t, app)
	d.PressCtrlR()
	d.Type("Grace")
	d.PressEnter()
	d.Type("Hopper")
	d.PressEnter()
	d.Type("SN001")
	d.PressEnter()
	d.Type("cobol")
	d.PressEnter()

	assert.Contains(t, d.View(), "already registered")
}

func TestApp_RegisterRespectsAllowList(t *testing.T) {
	app := newTestApp(t)
	app.Config.AllowedSerials = []string{"SN001"}

	d, _ := newTestDriver(t, app)
	d.PressCtrlR()
	d.Type("Grace")
	d.PressEnter()
	d.Type("Hopper")
	d.PressEnter()
	d.Type("SN999")
	d.PressEnter()
	d.Type("cobol")
	d.PressEnter()

	assert.Contains(t, d.View(), "not in the allowed device list")
}

func TestApp_CtrlCQuits(t *testing.T) {
	d, _ := newTestDriver(t, newTestApp(t))
	d.PressCtrlC()
	assert.True(t, d.Quitting)
}
