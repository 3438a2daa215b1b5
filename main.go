package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/league/internal/league/cmd"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		PadLevelText:     true,
	})
	logrus.SetLevel(logrus.InfoLevel)

	if err := league(); err != nil {
		logrus.Fatal(err)
	}
}

func league() error {
	root := cmd.Root()
	root.SetArgs(os.Args[1:])
	return root.Execute()
}
