package serial

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// DevicePrefix is the directory every serial device node lives under
const DevicePrefix = "/dev/"

// CandidateFamilies are the device name families an Arduino Leonardo shows
// up as, in probing order: native USB CDC first, then USB serial bridges.
var CandidateFamilies = []string{"ttyACM", "ttyUSB"}

// CandidatesPerFamily is how many numeric indices are tried per family
const CandidatesPerFamily = 10

// Candidates returns the fixed, ordered list of device paths to probe:
// every index of the first family, then every index of the next.
func Candidates() []string {
	paths := make([]string, 0, len(CandidateFamilies)*CandidatesPerFamily)
	for _, family := range CandidateFamilies {
		for i := 0; i < CandidatesPerFamily; i++ {
			paths = append(paths, fmt.Sprintf("%s%s%d", DevicePrefix, family, i))
		}
	}
	return paths
}

// Exists reports whether path names a device node that could be opened
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

var (
	portPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^ttyACM\d+$`), // USB CDC/ACM devices
		regexp.MustCompile(`^ttyUSB\d+$`), // USB serial adapters
		regexp.MustCompile(`^ttyS\d+$`),   // Standard serial ports
		regexp.MustCompile(`^ttyAMA\d+$`), // ARM/Raspberry Pi serial
	}
)

// ListPorts returns the serial ports present under /dev, sorted
func ListPorts() ([]string, error) {
	return listPortsIn(DevicePrefix)
}

func listPortsIn(devDir string) ([]string, error) {
	entries, err := os.ReadDir(devDir)
	if err != nil {
		return nil, err
	}

	var ports []string
	for _, entry := range entries {
		name := entry.Name()
		for _, pattern := range portPatterns {
			if !pattern.MatchString(name) {
				continue
			}
			fullPath := filepath.Join(devDir, name)
			if isCharacterDevice(fullPath) {
				ports = append(ports, fullPath)
			}
			break
		}
	}

	sort.Strings(ports)
	return ports, nil
}

// isCharacterDevice checks if the given path is a character device
func isCharacterDevice(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// Describe provides a human-readable description for a device path
func Describe(path string) string {
	name := filepath.Base(path)
	switch {
	case strings.HasPrefix(name, "ttyACM"):
		return "USB CDC/ACM Device"
	case strings.HasPrefix(name, "ttyUSB"):
		return "USB Serial Port"
	case strings.HasPrefix(name, "ttyAMA"):
		return "ARM Serial Port"
	case strings.HasPrefix(name, "ttyS"):
		return "Standard Serial Port"
	default:
		return "Serial Port"
	}
}
