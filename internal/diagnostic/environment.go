package diagnostic

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"runtime"
	"strconv"
	"strings"
)

// ConnectionHints are optional link-quality estimates. Zero values mean the
// host does not expose them.
type ConnectionHints struct {
	EffectiveType string
	DownlinkMbps  float64
	RTTMillis     int
}

// LocalInfo is what the host runtime exposes about itself.
type LocalInfo struct {
	UserAgent  string
	Platform   string
	Cores      int
	MemoryGB   float64
	Connection ConnectionHints
}

// Environment provides read-only local introspection.
type Environment interface {
	Local() LocalInfo
}

// HostEnvironment reads the Go runtime and the operating system.
type HostEnvironment struct {
	// Version is reported in the user agent.
	Version string

	// MeminfoPath overrides /proc/meminfo.
	MeminfoPath string
}

var _ Environment = HostEnvironment{}

func (h HostEnvironment) Local() LocalInfo {
	return LocalInfo{
		UserAgent:  UserAgent(h.Version),
		Platform:   runtime.GOOS + "/" + runtime.GOARCH,
		Cores:      runtime.NumCPU(),
		MemoryGB:   h.memoryGB(),
		Connection: hintsFromEnv(os.Getenv),
	}
}

// hintsFromEnv reads CYBERGUARD_CONN_TYPE, CYBERGUARD_DOWNLINK (Mbps) and
// CYBERGUARD_RTT (ms). Unparseable values are treated as absent.
func hintsFromEnv(getenv func(string) string) ConnectionHints {
	var h ConnectionHints
	h.EffectiveType = strings.TrimSpace(getenv("CYBERGUARD_CONN_TYPE"))
	if v, err := strconv.ParseFloat(getenv("CYBERGUARD_DOWNLINK"), 64); err == nil {
		h.DownlinkMbps = v
	}
	if v, err := strconv.Atoi(getenv("CYBERGUARD_RTT")); err == nil {
		h.RTTMillis = v
	}
	return h
}

func (h HostEnvironment) memoryGB() float64 {
	path := h.MeminfoPath
	if path == "" {
		path = "/proc/meminfo"
	}
	f, err := os.Open(path)
	if err != nil {
		return 0
	}
	defer func() { _ = f.Close() }()
	return parseMemTotalGB(f)
}

// parseMemTotalGB extracts MemTotal from meminfo-formatted input, rounded to
// the nearest whole gigabyte. Returns 0 if absent.
func parseMemTotalGB(r io.Reader) float64 {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 || fields[0] != "MemTotal:" {
			continue
		}
		kb, err := strconv.ParseFloat(fields[1], 64)
		if err != nil || kb <= 0 {
			return 0
		}
		return math.Max(1, math.Round(kb/(1024*1024)))
	}
	return 0
}

// UserAgent returns the user agent CyberGuard sends and reports.
func UserAgent(version string) string {
	if version == "" {
		version = "dev"
	}
	return fmt.Sprintf("CyberGuard/%s (%s; %s) %s", version, runtime.GOOS, runtime.GOARCH, strings.Replace(runtime.Version(), "go", "Go/", 1))
}

// condenseUserAgent keeps the last space-separated token.
func condenseUserAgent(ua string) string {
	fields := strings.Fields(ua)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

func memoryClass(gb float64) string {
	if gb <= 0 {
		return StandardMemory
	}
	return strconv.FormatFloat(gb, 'f', -1, 64) + " GB"
}

func connectionType(h ConnectionHints) string {
	if h.EffectiveType == "" {
		return DirectConnection
	}
	return strings.ToUpper(h.EffectiveType)
}

func downlink(h ConnectionHints) string {
	if h.DownlinkMbps <= 0 {
		return NotAvailable
	}
	return strconv.FormatFloat(h.DownlinkMbps, 'f', -1, 64) + " Mbps"
}

func rtt(h ConnectionHints) string {
	if h.RTTMillis <= 0 {
		return NotAvailable
	}
	return strconv.Itoa(h.RTTMillis) + " ms"
}
