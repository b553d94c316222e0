package security

import "github.com/termgenie/termgenie/internal/domain"

// Rule is one entry of the static risk table. The table is ordered; order
// affects only the sequence of collected reasons, never severity resolution.
type Rule struct {
	Severity domain.RiskLevel `yaml:"severity"`
	Pattern  string           `yaml:"pattern"`
	Reason   string           `yaml:"reason"`
}

// RulesFile is the YAML schema root for a user-supplied rule table.
type RulesFile struct {
	Rules struct {
		Patterns []Rule `yaml:"patterns"`
	} `yaml:"rules"`
}

// defaultRules is the built-in table. Patterns are anchored to command and
// flag boundaries to keep false positives down; full shell grammar is out of
// scope and false negatives are accepted.
func defaultRules() []Rule {
	return []Rule{
		// dangerous tier
		{
			Severity: domain.RiskDangerous,
			Pattern:  `(?i)\brm\s+(?:-[A-Za-z-]+\s+)*/+(?:\s|$|\*)`,
			Reason:   "recursive forced deletion of root path",
		},
		{
			Severity: domain.RiskDangerous,
			Pattern:  `(?i)\brm\s+(?:-[A-Za-z-]+\s+)*(?:~|\$HOME)/*(?:\s|$)`,
			Reason:   "recursive forced deletion of home path",
		},
		{
			Severity: domain.RiskDangerous,
			Pattern:  `:\(\)\s*\{\s*:\s*\|\s*:\s*&\s*\}\s*;\s*:`,
			Reason:   "shell fork bomb",
		},
		{
			Severity: domain.RiskDangerous,
			Pattern:  `(?i)\bdd\s+[^|;&]*\bof=/dev/(?:sd[a-z]|hd[a-z]|nvme\d|disk\d|mmcblk\d)`,
			Reason:   "raw write to a block device",
		},
		{
			Severity: domain.RiskDangerous,
			Pattern:  `>\s*/dev/(?:sd[a-z]|hd[a-z]|nvme\d|disk\d|mmcblk\d)`,
			Reason:   "raw write to a block device",
		},
		{
			Severity: domain.RiskDangerous,
			Pattern:  `(?i)\bmkfs(?:\.\w+)?\b`,
			Reason:   "filesystem format command",
		},
		{
			Severity: domain.RiskDangerous,
			Pattern:  `(?i)\b(?:chmod|chown)\s+(?:-[A-Za-z]*R[A-Za-z]*\s+)[^|;&]*\s/+(?:\s|$)`,
			Reason:   "recursive permission change on root path",
		},
		{
			Severity: domain.RiskDangerous,
			Pattern:  `(?i)\b(?:curl|wget)\b[^|;&]*\|\s*(?:sudo\s+)?(?:ba|z|fi|da)?sh\b`,
			Reason:   "remote download piped into a shell",
		},
		// warning tier
		{
			Severity: domain.RiskWarning,
			Pattern:  `(?i)(?:^|[\s;|&])sudo\s`,
			Reason:   "elevated privilege execution",
		},
		{
			Severity: domain.RiskWarning,
			Pattern:  `(?i)\brm\s+(?:-[A-Za-z-]+\s+)*-[A-Za-z]*[rf]`,
			Reason:   "forced or recursive deletion",
		},
		{
			Severity: domain.RiskWarning,
			Pattern:  `(?i)\bchmod\s+(?:-[A-Za-z]+\s+)*0?777\b`,
			Reason:   "world-writable permission grant",
		},
		{
			Severity: domain.RiskWarning,
			Pattern:  `(?i)\b(?:chmod|chown)\s+(?:-[A-Za-z]+\s+)*-[A-Za-z]*R\b`,
			Reason:   "recursive ownership or permission change",
		},
		{
			Severity: domain.RiskWarning,
			Pattern:  `(?i)\bdd\s+[^|;&]*\bif=`,
			Reason:   "low-level disk copy",
		},
		{
			Severity: domain.RiskWarning,
			Pattern:  `(?i)\b(?:kill|pkill|killall)\s+(?:-[A-Za-z]+\s+)*-(?:9|KILL|s\s+KILL)\b`,
			Reason:   "unconditional process kill",
		},
		{
			Severity: domain.RiskWarning,
			Pattern:  `(?i)\bgit\s+push\s+[^|;&]*(?:--force(?:-with-lease)?\b|\s-f\b)`,
			Reason:   "force push to a remote",
		},
		{
			Severity: domain.RiskWarning,
			Pattern:  `(?:^|[^>])>\s*/etc/`,
			Reason:   "overwrites files under /etc",
		},
		{
			Severity: domain.RiskWarning,
			Pattern:  `(?i)(?:^|[\s;|&])(?:shutdown|reboot|halt|poweroff)\b`,
			Reason:   "system shutdown or restart",
		},
		{
			Severity: domain.RiskWarning,
			Pattern:  `(?i)\bsystemctl\s+(?:stop|disable|mask)\b`,
			Reason:   "stops or disables a system service",
		},
		{
			Severity: domain.RiskWarning,
			Pattern:  `(?i)\bshred\b`,
			Reason:   "irrecoverable file deletion",
		},
		{
			Severity: domain.RiskWarning,
			Pattern:  `(?i)\bhistory\s+-c\b`,
			Reason:   "clears shell history",
		},
	}
}
