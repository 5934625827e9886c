package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const defaultConfigPath = "./config/config.yaml"

func main() {
	cfile := pflag.String("config", defaultConfigPath, "config file path")
	pflag.Parse()

	viper.SetConfigFile(*cfile)
	if err := viper.ReadInConfig(); err != nil {
		log.Panicf("read config file %s failed: %v", *cfile, err)
	}

	gin.DisableBindValidation()

	app := BuildDependency()
	log.Println("arena controller start")
	if err := app.Start(); err != nil {
		log.Panicf("arena controller exited: %v", err)
	}
}
