package main

import (
	"embed"
	"io/fs"
)

//go:embed all:frontend
var dashboardFiles embed.FS

// dashboardFS strips the "frontend" prefix so the server sees the page at
// the filesystem root.
func dashboardFS() fs.FS {
	sub, err := fs.Sub(dashboardFiles, "frontend")
	if err != nil {
		panic(err)
	}
	return sub
}
