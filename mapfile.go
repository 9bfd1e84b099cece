package gridpath

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/edsrzf/mmap-go"

	griderrors "github.com/tamirms/gridpath/errors"
)

const (
	// mapMagic is "BGRD" in little-endian.
	mapMagic = uint32(0x44524742)

	// mapVersion is the current binary map format version.
	mapVersion = uint16(0x0001)

	// mapHeaderSize is the exact size of the serialized header.
	mapHeaderSize = 32

	// mapFooterSize is the exact size of the serialized footer.
	mapFooterSize = 16

	// minMapFileSize is header plus footer: the smallest well-formed file
	// (a zero-cell grid has an empty bitmap).
	minMapFileSize = mapHeaderSize + mapFooterSize

	// maxMapDim bounds each grid axis. Keeps the bitmap size, and every
	// derived offset, far away from overflow.
	maxMapDim = 1 << 24
)

// mapHeader is the 32-byte file header.
//
// Layout:
//
//	Offset  Size  Field     Type
//	0       4     Magic     0x44524742 ("BGRD")
//	4       2     Version   0x0001
//	6       4     Width     uint32_le (cells)
//	10      4     Height    uint32_le (cells)
//	14      18    Reserved  [18]byte (zero)
type mapHeader struct {
	Magic    uint32
	Version  uint16
	Width    uint32
	Height   uint32
	Reserved [18]byte
}

func (h *mapHeader) encodeTo(buf []byte) {
	binary.LittleEndian.PutUint32(buf[0:4], h.Magic)
	binary.LittleEndian.PutUint16(buf[4:6], h.Version)
	binary.LittleEndian.PutUint32(buf[6:10], h.Width)
	binary.LittleEndian.PutUint32(buf[10:14], h.Height)
	copy(buf[14:32], h.Reserved[:])
}

func decodeMapHeader(buf []byte) (*mapHeader, error) {
	if len(buf) < mapHeaderSize {
		return nil, griderrors.ErrTruncatedFile
	}

	h := &mapHeader{
		Magic:   binary.LittleEndian.Uint32(buf[0:4]),
		Version: binary.LittleEndian.Uint16(buf[4:6]),
		Width:   binary.LittleEndian.Uint32(buf[6:10]),
		Height:  binary.LittleEndian.Uint32(buf[10:14]),
	}
	copy(h.Reserved[:], buf[14:32])

	if h.Magic != mapMagic {
		return nil, griderrors.ErrInvalidMagic
	}
	if h.Version != mapVersion {
		return nil, griderrors.ErrInvalidVersion
	}
	if h.Width > maxMapDim || h.Height > maxMapDim {
		return nil, griderrors.ErrCorruptedMap
	}
	return h, nil
}

// mapFooter is the 16-byte file footer.
//
// Layout:
//
//	Offset  Size  Field     Type
//	0       8     CellHash  uint64_le (xxHash64 of the cell bitmap)
//	8       8     Reserved  [8]byte (zero)
type mapFooter struct {
	CellHash uint64
	Reserved [8]byte
}

func (f *mapFooter) encodeTo(buf []byte) {
	binary.LittleEndian.PutUint64(buf[0:8], f.CellHash)
	copy(buf[8:16], f.Reserved[:])
}

func decodeMapFooter(buf []byte) (*mapFooter, error) {
	if len(buf) < mapFooterSize {
		return nil, griderrors.ErrTruncatedFile
	}
	f := &mapFooter{
		CellHash: binary.LittleEndian.Uint64(buf[0:8]),
	}
	copy(f.Reserved[:], buf[8:16])
	return f, nil
}

// MapFile is a read-only binary grid file.
//
// Thread safety: the grid view is safe for concurrent reads; Close must
// only be called after all readers are done. After Close returns, neither
// the MapFile nor any grid view obtained from it may be used.
type MapFile struct {
	// Memory map (no file handle needed after mmap)
	mmap mmap.MMap
	data []byte

	header *mapHeader
	grid   RasterGrid

	closed atomic.Bool
}

// WriteMapFile serializes g to path in the binary map format. The file is
// preallocated up front so a full disk fails early instead of mid-write.
func WriteMapFile(path string, g *RasterGrid) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create map file: %w", err)
	}
	defer file.Close()

	total := int64(mapHeaderSize) + int64(len(g.cells)) + int64(mapFooterSize)
	if err := fallocateFile(file, total); err != nil {
		return fmt.Errorf("preallocate map file: %w", err)
	}

	var headerBuf [mapHeaderSize]byte
	hdr := mapHeader{
		Magic:   mapMagic,
		Version: mapVersion,
		Width:   g.width,
		Height:  g.height,
	}
	hdr.encodeTo(headerBuf[:])
	if _, err := file.Write(headerBuf[:]); err != nil {
		return fmt.Errorf("write map header: %w", err)
	}
	if _, err := file.Write(g.cells); err != nil {
		return fmt.Errorf("write map cells: %w", err)
	}

	var footerBuf [mapFooterSize]byte
	ft := mapFooter{CellHash: xxhash.Sum64(g.cells)}
	ft.encodeTo(footerBuf[:])
	if _, err := file.Write(footerBuf[:]); err != nil {
		return fmt.Errorf("write map footer: %w", err)
	}

	return file.Sync()
}

// OpenMap opens a binary map file for reading. It opens the file,
// memory-maps it, and closes the file descriptor.
func OpenMap(path string) (*MapFile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open map file: %w", err)
	}
	defer file.Close()
	return OpenMapFile(file)
}

// OpenMapFile opens a binary map by memory-mapping the given file. The
// caller is responsible for closing f; per POSIX mmap(2), f may be closed
// immediately after OpenMapFile returns.
func OpenMapFile(f *os.File) (*MapFile, error) {
	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat map file: %w", err)
	}
	if stat.Size() < minMapFileSize {
		return nil, griderrors.ErrTruncatedFile
	}

	mm, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mmap map file: %w", err)
	}

	m := &MapFile{
		mmap: mm,
		data: []byte(mm),
	}
	if err := m.initFromData(); err != nil {
		closeErr := m.Close()
		if closeErr != nil {
			return nil, fmt.Errorf("%w (close: %v)", err, closeErr)
		}
		return nil, err
	}
	return m, nil
}

// OpenMapBytes creates a map view over an in-memory byte slice. No file is
// opened or memory-mapped; Close releases nothing and only marks the
// MapFile closed. The caller must not modify
// data while the MapFile is in use.
func OpenMapBytes(data []byte) (*MapFile, error) {
	if len(data) < minMapFileSize {
		return nil, griderrors.ErrTruncatedFile
	}
	m := &MapFile{data: data}
	if err := m.initFromData(); err != nil {
		return nil, err
	}
	return m, nil
}

// initFromData parses the header and wires the grid view over the mapped
// cell bitmap. Footer decoding is deferred to Verify, so opening touches
// only the contiguous prefix.
func (m *MapFile) initFromData() error {
	hdr, err := decodeMapHeader(m.data[:mapHeaderSize])
	if err != nil {
		return err
	}
	m.header = hdr

	nbytes := cellBytes(hdr.Width, hdr.Height)
	if mapHeaderSize+nbytes+mapFooterSize > len(m.data) {
		return griderrors.ErrTruncatedFile
	}

	m.grid = RasterGrid{
		width:    hdr.Width,
		height:   hdr.Height,
		cells:    m.data[mapHeaderSize : mapHeaderSize+nbytes],
		readonly: true,
	}
	return nil
}

// Grid returns the read-only grid view over the mapped data. The view is
// invalid after Close.
func (m *MapFile) Grid() *RasterGrid {
	return &m.grid
}

// Verify checks the cell bitmap against the footer checksum. The footer is
// decoded here rather than at open time, so Open avoids the scattered page
// fault at the end of the file.
func (m *MapFile) Verify() error {
	if m.closed.Load() {
		return griderrors.ErrMapClosed
	}
	ft, err := decodeMapFooter(m.data[len(m.data)-mapFooterSize:])
	if err != nil {
		return err
	}
	if xxhash.Sum64(m.grid.cells) != ft.CellHash {
		return griderrors.ErrChecksumFailed
	}
	return nil
}

// Prefault asks the kernel to fault in the cell bitmap ahead of use, for
// predictable first-search latency on large maps. Best effort.
func (m *MapFile) Prefault() {
	if m.closed.Load() {
		return
	}
	prefaultRegion(m.grid.cells)
}

// Close unmaps the file. Safe to call more than once.
func (m *MapFile) Close() error {
	if m.closed.Swap(true) {
		return nil // Already closed
	}
	if m.mmap != nil {
		return m.mmap.Unmap()
	}
	return nil
}

// ParseMap parses a textual map into a grid. Two layouts are accepted:
//
//   - plain rows of cell characters;
//   - the MovingAI benchmark layout, with a four-line header
//     (type, height N, width N, map) followed by the rows.
//
// Walkable cells: '.', 'G', 'S'. Blocked cells: '#', '@', 'O', 'T', 'W'.
// All rows must have equal width.
func ParseMap(data []byte) (*RasterGrid, error) {
	lines := splitMapLines(data)

	if len(lines) > 0 && strings.HasPrefix(lines[0], "type ") {
		var err error
		lines, err = stripMovingAIHeader(lines)
		if err != nil {
			return nil, err
		}
	}

	// Ignore trailing blank lines.
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return nil, griderrors.ErrEmptyMap
	}

	width := len(lines[0])
	height := len(lines)
	if width == 0 {
		return nil, griderrors.ErrEmptyMap
	}
	if width > maxMapDim || height > maxMapDim {
		return nil, griderrors.ErrMapTooLarge
	}

	g := NewRasterGrid(uint32(width), uint32(height))
	for y, line := range lines {
		if len(line) != width {
			return nil, griderrors.ErrRaggedMap
		}
		for x := 0; x < width; x++ {
			switch line[x] {
			case '.', 'G', 'S':
				// walkable; NewRasterGrid starts all-walkable
			case '#', '@', 'O', 'T', 'W':
				g.SetWalkable(uint32(x), uint32(y), false)
			default:
				return nil, fmt.Errorf("%w: %q at (%d,%d)", griderrors.ErrUnknownCell, line[x], x, y)
			}
		}
	}
	return g, nil
}

// ParseMapFile reads and parses a textual map from disk, hinting a
// sequential read to the kernel first.
func ParseMapFile(path string) (*RasterGrid, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open map file: %w", err)
	}
	defer file.Close()

	if stat, err := file.Stat(); err == nil {
		fadviseSequential(int(file.Fd()), 0, stat.Size())
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read map file: %w", err)
	}
	return ParseMap(data)
}

func splitMapLines(data []byte) []string {
	raw := bytes.Split(data, []byte{'\n'})
	lines := make([]string, len(raw))
	for i, l := range raw {
		lines[i] = strings.TrimSuffix(string(l), "\r")
	}
	return lines
}

// stripMovingAIHeader validates the MovingAI preamble and returns the row
// lines, checking declared dimensions against the actual rows.
func stripMovingAIHeader(lines []string) ([]string, error) {
	if len(lines) < 4 {
		return nil, griderrors.ErrBadMapHeader
	}
	height, err := movingAIDim(lines[1], "height ")
	if err != nil {
		return nil, err
	}
	width, err := movingAIDim(lines[2], "width ")
	if err != nil {
		return nil, err
	}
	if lines[3] != "map" {
		return nil, griderrors.ErrBadMapHeader
	}

	rows := lines[4:]
	for len(rows) > 0 && rows[len(rows)-1] == "" {
		rows = rows[:len(rows)-1]
	}
	if len(rows) != height {
		return nil, griderrors.ErrBadMapHeader
	}
	for _, r := range rows {
		if len(r) != width {
			return nil, griderrors.ErrRaggedMap
		}
	}
	return rows, nil
}

func movingAIDim(line, prefix string) (int, error) {
	if !strings.HasPrefix(line, prefix) {
		return 0, griderrors.ErrBadMapHeader
	}
	v, err := strconv.Atoi(strings.TrimPrefix(line, prefix))
	if err != nil || v <= 0 {
		return 0, griderrors.ErrBadMapHeader
	}
	return v, nil
}
