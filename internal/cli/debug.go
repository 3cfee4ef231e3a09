package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/daybook/internal/storage"
)

type DebugCmd struct {
	StorePath DebugStorePathCmd `cmd:"" help:"Show the resolved store location and data directory."`
	Keys      DebugKeysCmd      `cmd:"" help:"List the document keys in the store."`
	Dump      DebugDumpCmd      `cmd:"" help:"Dump a raw document as JSON."`
}

type DebugStorePathCmd struct{}

func (cmd *DebugStorePathCmd) Run(ctx *Context) error {
	output := map[string]string{
		"store":   ctx.Config.Store,
		"dataDir": ctx.Config.DataDir(),
		"config":  ctx.Config.File,
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.println(string(jsonBytes))
	return nil
}

type DebugKeysCmd struct{}

func (cmd *DebugKeysCmd) Run(ctx *Context) error {
	a, err := ctx.Open(false)
	if err != nil {
		return err
	}
	keys, err := a.Store.Keys()
	if err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}
	for _, k := range keys {
		ctx.println(k)
	}
	return nil
}

type DebugDumpCmd struct {
	Key string `arg:"" help:"Document key (habits or journal)."`
}

func (cmd *DebugDumpCmd) Run(ctx *Context) error {
	a, err := ctx.Open(false)
	if err != nil {
		return err
	}

	data, err := a.Store.Get(cmd.Key)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("document not found: %s", cmd.Key)
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", cmd.Key, err)
	}

	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		// not JSON; print it untouched
		ctx.println(string(data))
		return nil
	}
	ctx.println(out.String())
	return nil
}
