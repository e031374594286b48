package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/RichardKnop/machinery/v1"
	machineryconf "github.com/RichardKnop/machinery/v1/config"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/trekmark/trekmark-api/background"
	"github.com/trekmark/trekmark-api/store"
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

	conf := &machineryconf.Config{
		Broker:        viper.GetString("redis.conn"),
		DefaultQueue:  "trekmark_background",
		ResultBackend: viper.GetString("redis.conn"),
	}
	server, err := machinery.NewServer(conf)
	if err != nil {
		log.Panic(err)
	}

	opts := options.Client().ApplyURI(viper.GetString("mongo.conn"))
	opts.SetMaxPoolSize(viper.GetUint64("mongo.pool"))
	mongoClient, err := mongo.Connect(context.Background(), opts)
	if err != nil {
		log.Panicf("connect mongo database with error: %s", err)
	}

	mongoStore := store.NewMongoStore(mongoClient, viper.GetString("mongo.database"))
	defer mongoStore.Close()

	if err := background.RegisterRatingSync(server, mongoStore); err != nil {
		log.Panic(err)
	}

	worker := server.NewWorker("ratings-worker", viper.GetInt("worker.concurrency"))
	if err := worker.Launch(); err != nil {
		log.Fatal(err)
	}
}
