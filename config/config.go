package config

// GinConfig HTTP 服务配置
type GinConfig struct {
	Addr             string   `yaml:"addr" mapstructure:"addr"`
	AllowOrigins     []string `yaml:"allowOrigins" mapstructure:"allowOrigins"`
	AllowMethods     []string `yaml:"allowMethods" mapstructure:"allowMethods"`
	AllowHeaders     []string `yaml:"allowHeaders" mapstructure:"allowHeaders"`
	ExposeHeaders    []string `yaml:"exposeHeaders" mapstructure:"exposeHeaders"`
	AllowCredentials bool     `yaml:"allowCredentials" mapstructure:"allowCredentials"`
	MaxAge           int      `yaml:"maxAge" mapstructure:"maxAge"` // 单位: 秒
	CheckLoginPath   []string `yaml:"checkLoginPath" mapstructure:"checkLoginPath"`
}

func (GinConfig) Key() string {
	return "gin"
}

type MySQLConfig struct {
	DSN             string `yaml:"dsn" mapstructure:"dsn"`
	MaxIdleConns    int    `yaml:"maxIdleConns" mapstructure:"maxIdleConns"`
	MaxOpenConns    int    `yaml:"maxOpenConns" mapstructure:"maxOpenConns"`
	ConnMaxLifetime int    `yaml:"connMaxLifetime" mapstructure:"connMaxLifetime"` // 单位: 秒
}

func (MySQLConfig) Key() string {
	return "mysql"
}

type RedisConfig struct {
	Addr     string `yaml:"addr" mapstructure:"addr"`
	Password string `yaml:"password" mapstructure:"password"`
	DB       int    `yaml:"db" mapstructure:"db"`
}

func (RedisConfig) Key() string {
	return "redis"
}

type KafkaConfig struct {
	Brokers []string `yaml:"brokers" mapstructure:"brokers"`
}

func (KafkaConfig) Key() string {
	return "kafka"
}

type JWTConfig struct {
	JWTKey            string `yaml:"jwtKey" mapstructure:"jwtKey"`
	RefreshKey        string `yaml:"refreshKey" mapstructure:"refreshKey"`
	JWTExpiration     int    `yaml:"jwtExpiration" mapstructure:"jwtExpiration"`         // 单位: 秒
	RefreshExpiration int    `yaml:"refreshExpiration" mapstructure:"refreshExpiration"` // 单位: 秒
}

func (JWTConfig) Key() string {
	return "jwt"
}

// ExecutorConfig 代码执行服务配置
type ExecutorConfig struct {
	BaseURL string `yaml:"baseURL" mapstructure:"baseURL"`
	Timeout int    `yaml:"timeout" mapstructure:"timeout"` // 单位: 毫秒
}

func (ExecutorConfig) Key() string {
	return "executor"
}

type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
	Output string `yaml:"output" mapstructure:"output"`
}

func (LogConfig) Key() string {
	return "log"
}
