package elevutils

import (
	_ "embed"
	"flag"
	"fmt"
	"os"
	"strings"
)

//go:generate sh -c "printf %s $(git rev-parse HEAD) > githash.txt"
//go:embed githash.txt
var gitHash string

func GetGitHash() string {
	return gitHash
}

// requestList collects repeated -request flags.
type requestList []string

func (rl *requestList) String() string {
	return strings.Join(*rl, ",")
}

func (rl *requestList) Set(value string) error {
	*rl = append(*rl, value)
	return nil
}

type CmdArgs struct {
	ConfigPath string
	EnvPath    string
	Identifier string
	Requests   []string
	Linger     bool
}

func ProcessCmdArgs() CmdArgs {
	var requests requestList

	help := flag.Bool("help", false, "Show Help Window")
	version := flag.Bool("version", false, "Show Version")
	configPath := flag.String("config", "", "Path to a YAML config file. Defaults to built-in config")
	envPath := flag.String("env", ".env", "Path to a dotenv file overriding the config. Ignored if missing")
	identifier := flag.String("id", "", "Set the identifier of this dispatch run. Defaults to random string")
	linger := flag.Bool("linger", false, "Keep running after all requests are served, until interrupted")
	flag.Var(&requests, "request", "Request to submit, ext:<floor>:<up|down> or int:<origin>:<destination>. Repeatable")

	flag.Parse()

	if *version {
		fmt.Println("Version:", GetGitHash())
		os.Exit(0)
	}

	if *help {
		fmt.Println("Usage: ./elevatordispatch [OPTIONS]")
		fmt.Println("Elevator Fleet Dispatch Simulator")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Example:")
		fmt.Println("	./elevatordispatch -request ext:2:up -request int:2:3 -request ext:8:up")
		os.Exit(0)
	}

	return CmdArgs{
		ConfigPath: *configPath,
		EnvPath:    *envPath,
		Identifier: *identifier,
		Requests:   requests,
		Linger:     *linger,
	}
}
