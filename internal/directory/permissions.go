package directory

import "nexus/internal/pendency"

// CanEdit applies the permission model to a record: level 1 is read-only,
// level 2 may edit records they are responsible for, level 3 anything in
// their sector, level 4 everything.
func CanEdit(level int, actorName, actorSector string, record *pendency.Pendency) bool {
	if record == nil {
		return false
	}
	switch {
	case level >= LevelUnrestricted:
		return true
	case level == LevelSector:
		return actorSector != "" && record.Sector == actorSector
	case level == LevelOwnRecords:
		return actorName != "" && record.ResponsibleUser() == actorName
	default:
		return false
	}
}
