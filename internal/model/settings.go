package model

const (
	DefaultSoundID          = "classic"
	DefaultActivityLogLimit = 25
)

type Settings struct {
	SelectedSoundID  string
	ShowActivityLog  bool
	ActivityLogLimit int
}

func DefaultSettings() Settings {
	return Settings{
		SelectedSoundID:  DefaultSoundID,
		ShowActivityLog:  true,
		ActivityLogLimit: DefaultActivityLogLimit,
	}
}
