// defaults.go: default configuration values, applied before any file or
// environment override.
package conf

import "github.com/spf13/viper"

func setDefaultConfig() {
	viper.SetDefault("main.name", "StrikeDash")
	viper.SetDefault("main.debug", false)
	viper.SetDefault("main.log.enabled", true)
	viper.SetDefault("main.log.path", "strikedash.log")
	viper.SetDefault("main.log.maxsize", 10)
	viper.SetDefault("main.log.maxage", 28)
	viper.SetDefault("main.log.backups", 3)

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.debug", false)

	viper.SetDefault("output.sqlite.enabled", true)
	viper.SetDefault("output.sqlite.path", "strikedash.db")
	viper.SetDefault("output.mysql.enabled", false)
	viper.SetDefault("output.mysql.username", "strikedash")
	viper.SetDefault("output.mysql.password", "")
	viper.SetDefault("output.mysql.database", "strikedash")
	viper.SetDefault("output.mysql.host", "localhost")
	viper.SetDefault("output.mysql.port", "3306")

	viper.SetDefault("import.maxuploadmb", 32)
	viper.SetDefault("import.renumberbatch", 200)

	viper.SetDefault("modeling.epoch", "2020-01-01")
	viper.SetDefault("modeling.remarkmarker", "confirm")
	viper.SetDefault("modeling.trafficpoint", 0)
	viper.SetDefault("modeling.defaulthour", 12)
}
