package cfg

import (
	"encoding/json"
	"log"
	"os"
)

const dbConfigPath = "./cfg/db.json"

type DBConfig struct {
	Host     string            `json:"host"`
	Port     int               `json:"port"`
	User     string            `json:"user"`
	RootName string            `json:"root_name"`
	Names    map[string]string `json:"names"`
}

var DBCfg = DBConfig{
	Host:     "localhost",
	Port:     6543,
	User:     "campaign-root",
	RootName: "campaign-root-db",
	Names: map[string]string{
		"en": "campaign-en-db",
	},
}

// FillDBConfig overrides the defaults from cfg/db.json when the file is
// present.
func FillDBConfig() {
	bytes, err := os.ReadFile(dbConfigPath)
	if err != nil {
		return
	}

	if err := json.Unmarshal(bytes, &DBCfg); err != nil {
		log.Fatal(err)
	}
}
