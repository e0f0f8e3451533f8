package main

import (
	ownIo "crittok/io"
	"crittok/tokenizer"
	"crittok/web"
	"fmt"
	"github.com/alecthomas/kong"
	"github.com/hauke96/sigolo/v2"
	"os"
	"strings"
)

const VERSION = "v0.1.0"

var cli struct {
	Logging  string      `help:"Logging verbosity." enum:"info,debug,trace" short:"l" default:"info"`
	Version  VersionFlag `help:"Print version information and quit" name:"version" short:"v"`
	Tokenize struct {
		Input    string `help:"The criteria document (JSON). Use '-' to read from stdin." placeholder:"<input-file>" arg:""`
		Format   string `help:"Output format." enum:"json,table" short:"f" default:"table"`
		NoColor  bool   `help:"Disable colored table output."`
		Strict   bool   `help:"Fail on clauses that would otherwise produce incomplete tokens."`
		MaxDepth int    `help:"Maximum nesting depth of the criteria document. 0 disables the limit." default:"128"`
	} `cmd:"" help:"Tokenizes the given criteria document and prints the tokens."`
	Server struct {
		Port         string `help:"The port this server should listen to." short:"p" default:"8080"`
		CacheSize    int    `help:"Number of tokenization results to cache. 0 disables the cache." default:"1000"`
		MaxBodyBytes int64  `help:"Maximum size of request bodies in bytes." default:"1048576"`
		Strict       bool   `help:"Fail on clauses that would otherwise produce incomplete tokens."`
		MaxDepth     int    `help:"Maximum nesting depth of criteria documents. 0 disables the limit." default:"128"`
		TlsCert      string `help:"The certificate file for TLS connections."`
		TlsKey       string `help:"The key file for TLS connections."`
	} `cmd:"" help:"Starts a server with an HTTP API to tokenize criteria documents."`
}

type VersionFlag string

func (v VersionFlag) Decode(ctx *kong.DecodeContext) error { return nil }
func (v VersionFlag) IsBool() bool                         { return true }
func (v VersionFlag) BeforeApply(app *kong.Kong, vars kong.Vars) error {
	fmt.Println(vars["version"])
	app.Exit(0)
	return nil
}

func main() {
	ctx := kong.Parse(
		&cli,
		kong.Name("crittok"),
		kong.Description("Tokenizes query criteria documents into flat token streams for SQL renderers."),
		kong.Vars{
			"version": VERSION,
		},
	)

	if strings.ToLower(cli.Logging) == "debug" {
		sigolo.SetDefaultLogLevel(sigolo.LOG_DEBUG)
	} else if strings.ToLower(cli.Logging) == "trace" {
		sigolo.SetDefaultLogLevel(sigolo.LOG_TRACE)
	} else if strings.ToLower(cli.Logging) == "info" {
		sigolo.SetDefaultLogLevel(sigolo.LOG_INFO)
		sigolo.SetDefaultFormatFunctionAll(sigolo.LogPlain)
	} else {
		sigolo.SetDefaultFormatFunctionAll(sigolo.LogPlain)
		sigolo.Fatalf("Unknown logging level '%s'", cli.Logging)
	}

	switch ctx.Command() {
	case "tokenize <input>":
		expression, err := ownIo.ReadCriteriaFile(cli.Tokenize.Input)
		sigolo.FatalCheck(err)

		tokens, err := tokenizer.New(tokenizer.Options{
			MaxDepth: cli.Tokenize.MaxDepth,
			Strict:   cli.Tokenize.Strict,
		}).Tokenize(expression)
		sigolo.FatalCheck(err)

		sigolo.Debugf("Found %d token", len(tokens))

		if cli.Tokenize.Format == "json" {
			err = ownIo.WriteTokensAsJson(tokens, os.Stdout)
			fmt.Println()
		} else {
			err = ownIo.WriteTokensAsTable(tokens, os.Stdout, !cli.Tokenize.NoColor)
		}
		sigolo.FatalCheck(err)
	case "server":
		options := web.Options{
			Tokenizer: tokenizer.Options{
				MaxDepth: cli.Server.MaxDepth,
				Strict:   cli.Server.Strict,
			},
			CacheSize:    cli.Server.CacheSize,
			MaxBodyBytes: cli.Server.MaxBodyBytes,
			Version:      VERSION,
		}

		if cli.Server.TlsCert != "" && cli.Server.TlsKey != "" {
			web.StartServerTls(cli.Server.Port, cli.Server.TlsCert, cli.Server.TlsKey, options)
		} else {
			web.StartServer(cli.Server.Port, options)
		}
	default:
		sigolo.Errorf("Unknown command '%s'", ctx.Command())
	}
}
