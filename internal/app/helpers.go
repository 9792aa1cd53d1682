package app

import (
	"log"
)

func logBanner(cfgPath, uiPath, bridgeURL string) {
	log.Println("────────────────────────────────────────")
	log.Println("HOST: tabshell")
	log.Printf("HOST:  config file : %s", cfgPath)
	log.Printf("HOST:  ui state    : %s", uiPath)
	log.Printf("HOST:  bridge      : %s", bridgeURL)
	log.Println("────────────────────────────────────────")
}
