package main

import (
	"os"

	"github.com/yeremiapane/intranet-portal/utils"
)

func main() {
	utils.InitLogger()

	if err := newRootCmd().Execute(); err != nil {
		utils.ErrorLogger.Error(err)
		os.Exit(1)
	}
}
