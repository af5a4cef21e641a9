package cgen

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/canopener/canopener/pkg/od"
	"github.com/sirupsen/logrus"
)

const (
	VersionMajor = 0
	VersionMinor = 1
	VersionFix   = 0
)

const (
	DefaultDevice = "OD"
	dateLayout    = "2006-01-02 15:04:05"
	datePrefix    = " * Date: "
)

var _logger = logrus.WithField("service", "[CGEN]")

// Version returns the generator identity written inside of every header
func Version() string {
	return fmt.Sprintf("CANopener v%d.%d.%d", VersionMajor, VersionMinor, VersionFix)
}

// Generator creates a C header out of an [od.ObjectDictionary]
type Generator struct {
	// Device name, prefix of every macro and identifier
	Device string
	// Base name of the EDS or DCF the dictionary was read from
	BaseFile string
	// Now gives the date written inside of the banner
	Now    func() time.Time
	logger *logrus.Entry
}

// NewGenerator creates a generator for device, sourcePath
// is the path of the EDS or DCF the dictionary comes from
func NewGenerator(device string, sourcePath string) *Generator {
	if device == "" {
		device = DefaultDevice
	}
	return &Generator{
		Device:   device,
		BaseFile: filepath.Base(sourcePath),
		Now:      time.Now,
		logger:   _logger.WithField("device", device),
	}
}

// GuardToken returns the include guard for a device & file name
// e.g. "OD", "sample.eds" => OD_SAMPLE_EDS_H_
func GuardToken(device string, baseFile string) string {
	return MacroToken(device) + "_" + MacroToken(baseFile) + "_H_"
}

// Generate writes the complete header for dict to w.
// Entries are written in dictionary order. The first write error
// stops the output and is returned, nothing already written is undone.
func (g *Generator) Generate(w io.Writer, dict *od.ObjectDictionary) error {
	logger := g.logger
	if logger == nil {
		logger = _logger
	}
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}

	bw := bufio.NewWriter(w)
	hw := &headerWriter{w: bw}
	guard := GuardToken(g.Device, g.BaseFile)

	hw.printf("/* clang-format off */\n\n")
	hw.printf("/**\n * Generated with %s\n * Base file: %s\n%s%s\n */\n\n",
		Version(), g.BaseFile, datePrefix, now().Format(dateLayout))

	// Header guard
	hw.printf("#ifndef %s\n", guard)
	hw.printf("#define %s\n\n", guard)

	hw.printf("#include <stdlib.h>\n\n")
	hw.printf("#include <stdint.h>\n\n")

	em := newEmitter(hw, g.Device)
	for _, entry := range dict.Entries() {
		logger.Debugf("writing %v", entry)
		em.entry(entry)
		if hw.err != nil {
			break
		}
	}

	// End of header guard
	hw.printf("#endif /* %s */\n", guard)
	hw.printf("\n/* clang-format on */\n")

	if hw.err != nil {
		return hw.err
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	logger.Infof("generated %d entries from %v", dict.Len(), g.BaseFile)
	return nil
}
