package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/goliatone/go-camgen/pkg/locale"
	"github.com/goliatone/go-camgen/pkg/model"
	"github.com/goliatone/go-camgen/pkg/orchestrator"
	"github.com/goliatone/go-camgen/pkg/renderers/island"
	"github.com/goliatone/go-camgen/pkg/tui"
)

const profileDefaultOption = "profile default"

const sourceStringsOption = "source strings"

func main() {
	profileName := flag.String("profile", "face", "capture profile to render")
	backend := flag.String("backend", "", "backend override (html5, flash, none); empty keeps the profile default")
	localeName := flag.String("locale", "", "translation locale; empty keeps source strings")
	renderer := flag.String("renderer", "html", "renderer to use (html, island)")
	profilesDir := flag.String("profiles", "", "directory of profile documents (embedded profiles if empty)")
	localesDir := flag.String("locales", "", "directory of locale catalogs (embedded catalogs if empty)")
	output := flag.String("output", "", "output file (stdout if empty)")
	list := flag.Bool("list", false, "list available profiles, locales, and backends, then exit")
	interactive := flag.Bool("interactive", false, "pick profile, backend, and locale with prompts")
	flag.Parse()

	ctx := context.Background()

	var options []orchestrator.Option
	if *profilesDir != "" {
		options = append(options, orchestrator.WithProfilesFS(os.DirFS(*profilesDir)))
	}
	if *localesDir != "" {
		catalog, err := locale.LoadFS(os.DirFS(*localesDir))
		if err != nil {
			log.Fatalf("Failed to load locales: %v", err)
		}
		options = append(options, orchestrator.WithLocales(catalog))
	}

	islandRenderer, err := island.New()
	if err != nil {
		log.Fatalf("Failed to initialise island renderer: %v", err)
	}
	options = append(options, orchestrator.WithRenderer(islandRenderer))

	gen := orchestrator.New(options...)

	if *list {
		listInventory(gen)
		return
	}

	req := orchestrator.Request{
		Profile:  *profileName,
		Backend:  *backend,
		Locale:   *localeName,
		Renderer: *renderer,
	}

	if *interactive {
		driver, err := tui.NewDriver()
		if err != nil {
			log.Fatalf("Failed to start prompts: %v", err)
		}
		if err := promptRequest(ctx, driver, gen, &req); err != nil {
			if errors.Is(err, tui.ErrAborted) {
				log.Fatal("aborted")
			}
			log.Fatalf("Prompt failed: %v", err)
		}
		if *output != "" {
			ok, err := confirmOverwrite(ctx, driver, *output)
			if err != nil {
				if errors.Is(err, tui.ErrAborted) {
					log.Fatal("aborted")
				}
				log.Fatalf("Prompt failed: %v", err)
			}
			if !ok {
				log.Fatal("aborted")
			}
		}
	}

	outputHTML, err := gen.Generate(ctx, req)
	if err != nil {
		log.Fatalf("Failed to generate widget: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, outputHTML, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Widget written to %s\n", *output)
	} else {
		fmt.Println(string(outputHTML))
	}
}

func listInventory(gen *orchestrator.Orchestrator) {
	fmt.Println("profiles:")
	for _, name := range gen.Profiles().Names() {
		fmt.Printf("  %s\n", name)
	}
	fmt.Println("locales:")
	for _, code := range gen.Locales().Locales() {
		fmt.Printf("  %s\n", code)
	}
	fmt.Println("backends:")
	for _, b := range model.Backends() {
		fmt.Printf("  %s\n", b)
	}
}

func promptRequest(ctx context.Context, driver tui.PromptDriver, gen *orchestrator.Orchestrator, req *orchestrator.Request) error {
	names := gen.Profiles().Names()
	if len(names) == 0 {
		return errors.New("no profiles available")
	}
	idx, err := driver.Select(ctx, tui.SelectConfig{
		Message:      "Capture profile",
		Options:      names,
		DefaultIndex: indexOf(names, req.Profile),
	})
	if err != nil {
		return err
	}
	req.Profile = names[idx]

	backends := backendOptions()
	selected := profileDefaultOption
	if req.Backend != "" {
		selected = req.Backend
	}
	bidx, err := driver.Select(ctx, tui.SelectConfig{
		Message:      "Backend",
		Options:      backends,
		DefaultIndex: indexOf(backends, selected),
	})
	if err != nil {
		return err
	}
	if bidx <= 0 {
		req.Backend = ""
	} else {
		req.Backend = backends[bidx]
	}

	locales := append([]string{sourceStringsOption}, gen.Locales().Locales()...)
	current := sourceStringsOption
	if req.Locale != "" {
		current = req.Locale
	}
	lidx, err := driver.Select(ctx, tui.SelectConfig{
		Message:      "Locale",
		Options:      locales,
		DefaultIndex: indexOf(locales, current),
	})
	if err != nil {
		return err
	}
	if lidx <= 0 {
		req.Locale = ""
	} else {
		req.Locale = locales[lidx]
	}

	return nil
}

func confirmOverwrite(ctx context.Context, driver tui.PromptDriver, path string) (bool, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}
	return driver.Confirm(ctx, tui.ConfirmConfig{
		Message: fmt.Sprintf("Overwrite %s?", path),
	})
}

func backendOptions() []string {
	options := []string{profileDefaultOption}
	for _, b := range model.Backends() {
		options = append(options, string(b))
	}
	return options
}

func indexOf(options []string, value string) int {
	for i, option := range options {
		if option == value {
			return i
		}
	}
	return -1
}
