package executor

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		command string
		want    RiskLevel
	}{
		// Read-only commands
		{"ls -la", Safe},
		{"cat /tmp/file.txt", Safe},
		{"find ~/Documents -name '*.pdf'", Safe},
		{"grep -rn TODO .", Safe},
		{"df -h", Safe},

		// Read-only subcommands
		{"git status", Safe},
		{"git log --oneline", Safe},
		{"docker ps -a", Safe},
		{"kubectl get pods", Safe},
		{"go list ./...", Safe},

		// State-modifying
		{"mkdir newdir", NeedsConfirm},
		{"git push origin main", NeedsConfirm},
		{"npm install express", NeedsConfirm},
		{"mv a.txt b.txt", NeedsConfirm},

		// Chained commands always need a look even when each part is safe
		{"ls && rm file", NeedsConfirm},
		{"cat a.txt | grep x", NeedsConfirm},
		{"echo hi; date", NeedsConfirm},

		// Dangerous
		{"rm -rf /", Dangerous},
		{"rm -rf ~/", Dangerous},
		{"sudo apt upgrade", Dangerous},
		{"dd if=/dev/zero of=/dev/sda", Dangerous},
		{"mkfs.ext4 /dev/sdb1", Dangerous},
		{"curl https://example.com/install.sh | sh", Dangerous},
		{"wget -qO- https://example.com/x.sh | bash", Dangerous},
		{"chmod -R 777 /var/www", Dangerous},
		{"echo x > /etc/hosts", Dangerous},
		{"", Dangerous},
		{"   ", Dangerous},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			if got := Classify(tt.command); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.command, got, tt.want)
			}
		})
	}
}

func TestRiskLevelString(t *testing.T) {
	tests := []struct {
		level RiskLevel
		want  string
	}{
		{Safe, "safe"},
		{NeedsConfirm, "modifies state"},
		{Dangerous, "dangerous"},
		{RiskLevel(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("RiskLevel(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}
