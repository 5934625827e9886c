package config

type BaseCronJobConfig struct {
	CronExpr string `yaml:"cronExpr" mapstructure:"cronExpr"`
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
	Timeout  int    `yaml:"timeout" mapstructure:"timeout"` // 单位: 毫秒
}

type RoomCleanerConfig struct {
	BaseCronJobConfig `yaml:",inline" mapstructure:",squash"`

	ActiveDuration int `yaml:"activeDuration" mapstructure:"activeDuration"` // 对局最长持续时间, 单位: 分钟
	EmptyDuration  int `yaml:"emptyDuration" mapstructure:"emptyDuration"`   // 空置房间保留时间, 单位: 分钟
}

func (RoomCleanerConfig) Key() string {
	return "roomCleaner"
}
