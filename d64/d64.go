// Package d64 implements a reader for the .D64 disk image format: a flat
// dump of a 1541 disk's 35 (or 40, with the non-standard extension) tracks
// at 256 bytes/sector, geometry-decoded per track since track length
// varies with radius. It exposes an Image struct with an io.ReaderFrom
// method and a package-level Open helper, with plain fmt.Errorf wrapping
// since this is pure format decoding, no emulation state.
package d64

import (
	"fmt"
	"io"
	"os"
)

const sectorSize = 256

// sectorsPerTrack is the standard non-error-checked D64 layout: sector
// count per zone drops with track number as the physical track shortens.
var sectorsPerTrack = [41]int{
	0,
	21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21, 21,
	19, 19, 19, 19, 19, 19, 19,
	18, 18, 18, 18, 18, 18,
	17, 17, 17, 17, 17,
	// tracks 36-40 only exist in the 40-track extension.
	17, 17, 17, 17, 17,
}

// Standard variants, by raw byte size.
const (
	Size35Track          = 174848
	Size35TrackWithError = 175531
	Size40Track          = 196608
	Size40TrackWithError = 197376
)

// Image is a decoded .D64 disk image: raw sector bytes indexed by
// (track, sector), plus the optional per-sector error-info byte block
// some dumps append.
type Image struct {
	Tracks    int
	sectors   [][]byte // flat, indexed by trackOffset(track)+sector
	ErrorInfo []byte   // one byte per sector if present, else nil
}

// Open reads a .D64 image from path.
func Open(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img := new(Image)
	if _, err := img.ReadFrom(f); err != nil {
		return nil, fmt.Errorf("d64: %s: %w", path, err)
	}
	return img, nil
}

// ReadFrom implements io.ReaderFrom.
func (img *Image) ReadFrom(r io.Reader) (int64, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}

	var tracks int
	var withErrorInfo bool
	switch len(buf) {
	case Size35Track:
		tracks = 35
	case Size35TrackWithError:
		tracks = 35
		withErrorInfo = true
	case Size40Track:
		tracks = 40
	case Size40TrackWithError:
		tracks = 40
		withErrorInfo = true
	default:
		return 0, fmt.Errorf("unrecognized image size %d bytes", len(buf))
	}

	img.Tracks = tracks
	totalSectors := 0
	for t := 1; t <= tracks; t++ {
		totalSectors += sectorsPerTrack[t]
	}

	img.sectors = make([][]byte, totalSectors)
	off := 0
	idx := 0
	for t := 1; t <= tracks; t++ {
		for s := 0; s < sectorsPerTrack[t]; s++ {
			img.sectors[idx] = buf[off : off+sectorSize]
			off += sectorSize
			idx++
		}
	}

	if withErrorInfo {
		img.ErrorInfo = buf[off : off+totalSectors]
	}

	return int64(len(buf)), nil
}

// trackOffset returns the flat sector index of (track, 0).
func (img *Image) trackOffset(track int) int {
	off := 0
	for t := 1; t < track; t++ {
		off += sectorsPerTrack[t]
	}
	return off
}

// ReadSector returns the 256 bytes at (track, sector), track 1-based.
func (img *Image) ReadSector(track, sector int) ([]byte, error) {
	if track < 1 || track > img.Tracks || sector < 0 || sector >= sectorsPerTrack[track] {
		return nil, fmt.Errorf("d64: sector %d/%d out of range for track %d (%d tracks)", track, sector, track, img.Tracks)
	}
	return img.sectors[img.trackOffset(track)+sector], nil
}

// SectorsInTrack reports the sector count of track (1-based), the
// geometry the drive's GCR decoder needs to know when to wrap.
func SectorsInTrack(track int) int {
	if track < 1 || track > 40 {
		return 0
	}
	return sectorsPerTrack[track]
}
