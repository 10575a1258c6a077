package domain

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

type TherapyType string

const (
	TherapyChest TherapyType = "chest"
	TherapyArm   TherapyType = "arm"
	TherapyLeg   TherapyType = "leg"
)

type TherapyMode string

const (
	ModeGentle  TherapyMode = "gentle"
	ModeMedium  TherapyMode = "medium"
	ModeIntense TherapyMode = "intense"
	ModeManual  TherapyMode = "manual"
)

type SessionStatus string

const (
	StatusCompleted SessionStatus = "completed"
	StatusStopped   SessionStatus = "stopped"
)

// ValidTherapyTypes is the canonical set of accepted therapy type strings.
var ValidTherapyTypes = map[string]bool{
	"chest": true, "arm": true, "leg": true,
}

// ValidTherapyModes is the canonical set of accepted mode strings.
var ValidTherapyModes = map[string]bool{
	"gentle": true, "medium": true, "intense": true, "manual": true,
}

// Label returns the display name used on screens and in reports.
func (t TherapyType) Label() string {
	switch t {
	case TherapyChest:
		return "Chest Therapy"
	case TherapyArm:
		return "Arm Therapy"
	case TherapyLeg:
		return "Leg Therapy"
	}
	return string(t)
}

func (m TherapyMode) Label() string {
	switch m {
	case ModeGentle:
		return "Gentle"
	case ModeMedium:
		return "Medium"
	case ModeIntense:
		return "Intense"
	case ModeManual:
		return "Manual"
	}
	return string(m)
}
