// Package main prints translation coverage for the embedded message catalogs.
package main

import (
	"flag"
	"os"

	"github.com/louisbranch/scorekeeper/internal/platform/config"
	i18ncatalog "github.com/louisbranch/scorekeeper/internal/platform/i18n/catalog"
	"github.com/louisbranch/scorekeeper/internal/tools/i18nstatus"
)

func main() {
	baseLocale := flag.String("base-locale", i18ncatalog.BaseLocale, "base locale used as translation source of truth")
	check := flag.Bool("check", false, "exit non-zero when any locale is missing keys")
	out := flag.String("out", "", "markdown output path (default stdout)")
	flag.Parse()

	bundle, err := i18ncatalog.LoadEmbedded()
	if err != nil {
		config.Exitf("load i18n catalogs: %v", err)
	}
	rep, err := i18nstatus.Build(bundle, *baseLocale)
	if err != nil {
		config.Exitf("%v", err)
	}

	w := os.Stdout
	if *out != "" {
		if err := config.EnsureParentDir(*out); err != nil {
			config.Exitf("%v", err)
		}
		f, err := os.Create(*out)
		if err != nil {
			config.Exitf("create %s: %v", *out, err)
		}
		defer f.Close()
		w = f
	}
	if err := rep.WriteMarkdown(w); err != nil {
		config.Exitf("write report: %v", err)
	}
	if *check {
		if err := rep.Incomplete(); err != nil {
			config.Exitf("%v", err)
		}
	}
}
