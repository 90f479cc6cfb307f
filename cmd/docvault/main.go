// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/docvault"
	"github.com/poiesic/docvault/config"
	"github.com/poiesic/docvault/core"
	"github.com/urfave/cli/v2"
)

func main() {
	storeFlag := &cli.StringFlag{
		Name:     "store",
		Aliases:  []string{"s"},
		Usage:    "Tenant store identifier",
		Required: true,
	}

	app := &cli.App{
		Name:  "docvault",
		Usage: "Multi-tenant document store over an embedded key-value engine",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML config file",
			},
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "Root directory for tenant stores (overrides config)",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "put",
				Usage:     "Store a JSON document (upsert)",
				ArgsUsage: "<json document>",
				Action:    putCommand,
				Flags:     []cli.Flag{storeFlag},
			},
			{
				Name:      "get",
				Usage:     "Retrieve a document by id",
				ArgsUsage: "<id>",
				Action:    getCommand,
				Flags:     []cli.Flag{storeFlag},
			},
			{
				Name:      "delete",
				Usage:     "Delete a document by id",
				ArgsUsage: "<id>",
				Action:    deleteCommand,
				Flags:     []cli.Flag{storeFlag},
			},
			{
				Name:   "scan",
				Usage:  "Enumerate documents in key order",
				Action: scanCommand,
				Flags: []cli.Flag{
					storeFlag,
					&cli.IntFlag{Name: "offset", Usage: "Raw records to skip", Value: 0},
					&cli.IntFlag{Name: "limit", Usage: "Maximum documents to return", Value: 25},
				},
			},
			{
				Name:   "find",
				Usage:  "Enumerate documents matching field predicates exactly",
				Action: findCommand,
				Flags: []cli.Flag{
					storeFlag,
					&cli.StringSliceFlag{
						Name:    "where",
						Aliases: []string{"w"},
						Usage:   "Predicate as field=value (value parsed as JSON, repeatable)",
					},
					&cli.IntFlag{Name: "offset", Usage: "Raw records to skip", Value: 0},
					&cli.IntFlag{Name: "limit", Usage: "Maximum documents to return", Value: 25},
				},
			},
			{
				Name:   "destroy",
				Usage:  "Irreversibly delete all data for a tenant store",
				Action: destroyCommand,
				Flags:  []cli.Flag{storeFlag},
			},
			{
				Name:   "flush",
				Usage:  "Force buffered writes to durable storage",
				Action: flushCommand,
				Flags:  []cli.Flag{storeFlag},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

func openVault(c *cli.Context) (*docvault.Vault, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	if root := c.String("root"); root != "" {
		cfg.Store.Root = root
	}
	return docvault.FromConfig(cfg)
}

func putCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one JSON document argument")
	}

	doc := &core.Document{}
	if err := json.Unmarshal([]byte(c.Args().First()), doc); err != nil {
		return fmt.Errorf("invalid document: %w", err)
	}

	vault, err := openVault(c)
	if err != nil {
		return err
	}
	defer vault.Close()

	store, err := vault.Store(c.String("store"))
	if err != nil {
		return err
	}

	stored, err := store.Create(c.Context, doc)
	if err != nil {
		return err
	}
	return printDocument(stored)
}

func getCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one id argument")
	}

	vault, err := openVault(c)
	if err != nil {
		return err
	}
	defer vault.Close()

	store, err := vault.Store(c.String("store"))
	if err != nil {
		return err
	}

	doc, err := store.Retrieve(c.Context, c.Args().First())
	if err != nil {
		return err
	}
	return printDocument(doc)
}

func deleteCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one id argument")
	}

	vault, err := openVault(c)
	if err != nil {
		return err
	}
	defer vault.Close()

	store, err := vault.Store(c.String("store"))
	if err != nil {
		return err
	}
	return store.Delete(c.Context, c.Args().First())
}

func scanCommand(c *cli.Context) error {
	vault, err := openVault(c)
	if err != nil {
		return err
	}
	defer vault.Close()

	store, err := vault.Store(c.String("store"))
	if err != nil {
		return err
	}

	for doc, err := range store.Scan(c.Context, c.Int("offset"), c.Int("limit")) {
		if err != nil {
			return err
		}
		if err := printDocument(doc); err != nil {
			return err
		}
	}
	return nil
}

func findCommand(c *cli.Context) error {
	pred, err := parsePredicate(c.StringSlice("where"))
	if err != nil {
		return err
	}

	vault, err := openVault(c)
	if err != nil {
		return err
	}
	defer vault.Close()

	store, err := vault.Store(c.String("store"))
	if err != nil {
		return err
	}

	for doc, err := range store.Find(c.Context, pred, c.Int("offset"), c.Int("limit")) {
		if err != nil {
			return err
		}
		if err := printDocument(doc); err != nil {
			return err
		}
	}
	return nil
}

func destroyCommand(c *cli.Context) error {
	vault, err := openVault(c)
	if err != nil {
		return err
	}
	defer vault.Close()

	return vault.Destroy(c.String("store"))
}

func flushCommand(c *cli.Context) error {
	vault, err := openVault(c)
	if err != nil {
		return err
	}
	defer vault.Close()

	return vault.Flush(c.String("store"))
}

// parsePredicate turns repeated field=value flags into a predicate.
// Values parse as JSON; anything that isn't valid JSON matches as a
// plain string, so --where name=alice works without quoting.
func parsePredicate(exprs []string) (core.Predicate, error) {
	pred := make(core.Predicate, len(exprs))
	for _, expr := range exprs {
		name, raw, ok := strings.Cut(expr, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid predicate %q: expected field=value", expr)
		}
		var v core.Value
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			v = core.String(raw)
		}
		pred[name] = v
	}
	return pred, nil
}

func printDocument(doc *core.Document) error {
	out, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
