package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-camgen/pkg/profile"
)

type violation struct {
	file     string
	location string
	message  string
}

func main() {
	flag.Usage = func() {
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [paths...]\n", filepath.Base(os.Args[0])); err != nil {
			panic(err)
		}
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "\nLint capture profile documents for structural problems.\n"); err != nil {
			panic(err)
		}
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		paths = []string{
			"examples/http/profiles",
		}
	}

	var violations []violation
	for _, path := range paths {
		linted, err := lintPath(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lint %s: %v\n", path, err)
			os.Exit(1)
		}
		violations = append(violations, linted...)
	}

	if len(violations) > 0 {
		sort.Slice(violations, func(i, j int) bool {
			if violations[i].file == violations[j].file {
				if violations[i].location == violations[j].location {
					return violations[i].message < violations[j].message
				}
				return violations[i].location < violations[j].location
			}
			return violations[i].file < violations[j].file
		})
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "%s: %s -> %s\n", v.file, v.location, v.message)
		}
		os.Exit(1)
	}
}

func lintPath(path string) ([]violation, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if info.IsDir() {
		store, err := profile.LoadFS(os.DirFS(path))
		if err != nil {
			return nil, err
		}
		return lintStore(store, path), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	store, err := profile.Parse(raw, path)
	if err != nil {
		return nil, err
	}
	return lintStore(store, ""), nil
}

func lintStore(store *profile.Store, baseDir string) []violation {
	var result []violation
	for _, name := range store.Names() {
		prof, ok := store.Profile(name)
		if !ok {
			continue
		}
		file := prof.Source
		if baseDir != "" {
			file = filepath.Join(baseDir, prof.Source)
		}
		for _, problem := range profile.Validate(prof) {
			result = append(result, violation{
				file:     file,
				location: formatLocation([]string{"profile", name, problem.Path}),
				message:  problem.Message,
			})
		}
	}
	return result
}

func formatLocation(path []string) string {
	return strings.Join(path, " > ")
}
