package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/iov-one/jointbank"
	jointbankd "github.com/iov-one/jointbank/cmd/jointbankd/app"
	"github.com/iov-one/jointbank/commands/server"
	"github.com/tendermint/tendermint/libs/log"
)

var (
	flagHome = "home"
	varHome  *string
)

func init() {
	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".jointbank")
	varHome = flag.String(flagHome, defaultHome, "directory to store files under")

	flag.CommandLine.Usage = helpMessage
}

func helpMessage() {
	fmt.Println("jointbankd")
	fmt.Println("          Shared bank accounts node")
	fmt.Println("")
	fmt.Println("help      Print this message")
	fmt.Println("init      Initialize app options in genesis file")
	fmt.Println("start     Run the abci server")
	fmt.Println("keygen    Generate a new principal key")
	fmt.Println("validate  Check the app state of genesis files")
	fmt.Println("version   Print the app version")
	fmt.Println(`
  -home string
        directory to store files under (default "$HOME/.jointbank")`)
}

func main() {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).
		With("module", "jointbank")

	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Println("Missing command:")
		helpMessage()
		os.Exit(1)
	}

	cmd := flag.Arg(0)
	rest := flag.Args()[1:]

	var err error
	switch cmd {
	case "help":
		helpMessage()
	case "init":
		err = server.InitCmd(jointbankd.GenInitOptions, logger, *varHome, rest)
	case "start":
		err = server.StartCmd(jointbankd.GenerateApp, logger, *varHome, rest)
	case "keygen":
		err = keygenCmd(os.Stdout, rest)
	case "validate":
		err = server.ValidateGenesis(jointbankd.Initializer(), rest)
	case "version":
		fmt.Println(jointbank.Version())
	default:
		err = fmt.Errorf("unknown command: %s", cmd)
	}

	if err != nil {
		fmt.Printf("Error: %+v\n\n", err)
		helpMessage()
		os.Exit(1)
	}
}
