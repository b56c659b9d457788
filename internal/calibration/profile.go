package calibration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"golang.org/x/sys/cpu"

	"github.com/agbru/digitsum/internal/aggregate"
)

const (
	// DefaultProfileFileName is the file name of the profile in the home directory.
	DefaultProfileFileName = ".digitsum_calibration.json"
	// CurrentProfileVersion is bumped whenever the profile layout changes.
	CurrentProfileVersion = 1
	// MaxProfileAge is how long a profile is trusted before recalibration.
	MaxProfileAge = 30 * 24 * time.Hour
)

// CalibrationProfile records a measured crossover together with the
// hardware and toolchain it was measured on.
type CalibrationProfile struct {
	// Hardware and toolchain fingerprint.
	NumCPU      int      `json:"num_cpu"`
	GOARCH      string   `json:"goarch"`
	GOOS        string   `json:"goos"`
	GoVersion   string   `json:"go_version"`
	WordSize    int      `json:"word_size"`
	CPUFeatures []string `json:"cpu_features,omitempty"`

	// OptimalCrossover is the segment count from which the parallel
	// strategy won. aggregate.NeverParallel when it never did.
	OptimalCrossover int `json:"optimal_crossover"`

	// Calibration parameters.
	CalibrationSegmentLength int    `json:"calibration_segment_length"`
	CalibrationRounds        int    `json:"calibration_rounds"`
	CalibrationTime          string `json:"calibration_time"`

	CalibratedAt   time.Time `json:"calibrated_at"`
	ProfileVersion int       `json:"profile_version"`
}

// NewProfile creates a profile fingerprinting the current host.
func NewProfile() *CalibrationProfile {
	return &CalibrationProfile{
		NumCPU:         runtime.NumCPU(),
		GOARCH:         runtime.GOARCH,
		GOOS:           runtime.GOOS,
		GoVersion:      runtime.Version(),
		WordSize:       32 << (^uint(0) >> 63),
		CPUFeatures:    cpuFeatures(),
		CalibratedAt:   time.Now(),
		ProfileVersion: CurrentProfileVersion,
	}
}

// cpuFeatures lists the instruction set extensions relevant to the host.
func cpuFeatures() []string {
	var features []string
	add := func(ok bool, name string) {
		if ok {
			features = append(features, name)
		}
	}
	switch runtime.GOARCH {
	case "amd64", "386":
		add(cpu.X86.HasSSE42, "sse4.2")
		add(cpu.X86.HasAVX2, "avx2")
		add(cpu.X86.HasBMI2, "bmi2")
		add(cpu.X86.HasAVX512F, "avx512f")
	case "arm64":
		add(cpu.ARM64.HasASIMD, "asimd")
		add(cpu.ARM64.HasATOMICS, "atomics")
		add(cpu.ARM64.HasSVE, "sve")
	}
	return features
}

// IsValid reports whether the profile was measured on hardware matching the
// current host.
func (p *CalibrationProfile) IsValid() bool {
	if p == nil {
		return false
	}
	return p.ProfileVersion == CurrentProfileVersion &&
		p.NumCPU == runtime.NumCPU() &&
		p.GOARCH == runtime.GOARCH &&
		p.WordSize == 32<<(^uint(0)>>63) &&
		slices.Equal(p.CPUFeatures, cpuFeatures())
}

// IsStale reports whether the profile is older than maxAge.
func (p *CalibrationProfile) IsStale(maxAge time.Duration) bool {
	if p == nil {
		return true
	}
	return time.Since(p.CalibratedAt) > maxAge
}

// String returns a human-readable summary of the profile.
func (p *CalibrationProfile) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Calibration profile (v%d)\n", p.ProfileVersion)
	fmt.Fprintf(&b, "  Host:       %d CPUs, %s/%s, %d-bit, %s\n", p.NumCPU, p.GOOS, p.GOARCH, p.WordSize, p.GoVersion)
	if len(p.CPUFeatures) > 0 {
		fmt.Fprintf(&b, "  Features:   %s\n", strings.Join(p.CPUFeatures, ", "))
	}
	crossover := fmt.Sprintf("%d segments", p.OptimalCrossover)
	if p.OptimalCrossover >= aggregate.NeverParallel {
		crossover = "never parallel"
	}
	fmt.Fprintf(&b, "  Crossover:  %s\n", crossover)
	fmt.Fprintf(&b, "  Calibrated: %s", p.CalibratedAt.Format(time.RFC3339))
	if p.CalibrationTime != "" {
		fmt.Fprintf(&b, " (took %s)", p.CalibrationTime)
	}
	return b.String()
}

// SaveProfile writes the profile as indented JSON to path.
func (p *CalibrationProfile) SaveProfile(path string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding calibration profile: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating profile directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing calibration profile: %w", err)
	}
	return nil
}

func loadProfile(path string) (*CalibrationProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading calibration profile: %w", err)
	}
	var p CalibrationProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decoding calibration profile: %w", err)
	}
	return &p, nil
}

// LoadOrCreateProfile loads the profile at path. When it is missing,
// unreadable or measured on other hardware, a fresh profile is returned and
// loaded is false.
func LoadOrCreateProfile(path string) (profile *CalibrationProfile, loaded bool) {
	p, err := loadProfile(path)
	if err != nil || !p.IsValid() {
		return NewProfile(), false
	}
	return p, true
}

// GetDefaultProfilePath returns the profile path in the user's home
// directory, or in the working directory when there is none.
func GetDefaultProfilePath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return DefaultProfileFileName
	}
	return filepath.Join(home, DefaultProfileFileName)
}
