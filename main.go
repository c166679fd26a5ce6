package main

import (
	"fmt"
	"os"

	"c64/d64"
)

func main() {
	cfg := parseArgs(os.Args[1:])

	switch cfg.mode {
	case diskInfosMode:
		diskInfos(cfg.DiskInfos)
	case versionMode:
		fmt.Println("c64 emulator core")
	default:
		emuMain(cfg.Run)
	}
}

func diskInfos(args DiskInfos) {
	img, err := d64.Open(args.ImagePath)
	checkf(err, "failed to open disk image")
	fmt.Printf("tracks: %d\n", img.Tracks)
	fmt.Printf("has error info: %v\n", img.ErrorInfo != nil)
}
