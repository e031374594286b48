package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/trekmark/trekmark-api/schema"
)

func main() {
	var configFile string
	flag.StringVar(&configFile, "c", "./config.yaml", "[optional] path of configuration file")
	flag.Parse()

	viper.SetConfigType("yaml")
	viper.SetConfigFile(configFile)
	if err := viper.ReadInConfig(); err != nil {
		fmt.Println("No config file. Read config from env.")
	}
	viper.AutomaticEnv()
	viper.SetEnvPrefix("trekmark")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	indexer := schema.NewMongoDBIndexer(viper.GetString("mongo.conn"), viper.GetString("mongo.database"))
	indexer.IndexAll()
}
