package patterns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsSingleton(t *testing.T) {
	assert.Same(t, Default(), Default())
	assert.Equal(t, DefaultOptions().MaxPIDDigits, Default().Options().MaxPIDDigits)
}

func TestMatchDestructive(t *testing.T) {
	lib := Default()

	testCases := []struct {
		command string
		name    string
	}{
		{"rm -rf /", "rm-rf-root"},
		{"rm -fr /", "rm-rf-root"},
		{"rm -Rf /", "rm-rf-root"},
		{"RM -RF /", "rm-rf-root"},
		{"rm -rf / --no-preserve-root", "rm-rf-root"},
		{"sudo rm -rf /*", "rm-rf-root"},
		{"rm -rf /etc", "rm-rf-root"},
		{"rm -rfv /usr/", "rm-rf-root"},
		{"rm -r -f /", "rm-r-f-root"},
		{"rm --recursive --force /", "rm-r-f-root"},
		{"rm -f -r /", "rm-f-r-root"},
		{"rm --force --recursive /home", "rm-f-r-root"},
		{"dd if=/dev/zero of=/dev/sda bs=1M", "dd-block-device"},
		{"dd if=image.iso of=/dev/nvme0n1", "dd-block-device"},
		{"cat junk > /dev/sdb", "redirect-block-device"},
		{"mkfs.ext4 /dev/sdb1", "mkfs"},
		{"sudo mkfs -t xfs /dev/vdb", "mkfs"},
		{"shutdown now", "shutdown"},
		{"sudo shutdown -h now", "shutdown"},
		{"echo bye; reboot", "shutdown"},
		{"systemctl poweroff", "shutdown"},
		{"kill -9 -1", "kill-all"},
		{"kill -KILL -1", "kill-all"},
		{"kill -s SIGKILL -1", "kill-all"},
		{"kill -9 -- -1", "kill-all"},
		{`rm -rf "/"`, "rm-rf-root"},
		{`rm -rf '/'`, "rm-rf-root"},
		{`sudo rm -rf "/etc/"`, "rm-rf-root"},
		{"echo x | sudo tee /dev/sda", "tee-block-device"},
		{"cat image.bin | tee -a /dev/nvme0n1 > /dev/null", "tee-block-device"},
	}

	for _, tc := range testCases {
		t.Run(tc.command, func(t *testing.T) {
			sig, ok := lib.MatchDestructive(tc.command)
			require.True(t, ok, "expected %q to be destructive", tc.command)
			assert.Equal(t, tc.name, sig.Name)
			assert.Equal(t, ClassDestructive, sig.Class)
		})
	}
}

func TestMatchDestructive_NoMatch(t *testing.T) {
	lib := Default()

	commands := []string{
		"rm -rf ./build",
		"rm -rf /tmp/scratch",
		"rm -rf node_modules && cd /",
		"rm /etc/hosts.bak",
		"ls -la /",
		"dd if=/dev/zero of=./disk.img bs=1M count=10",
		"echo done > /dev/null",
		"git commit -m 'graceful shutdown handler'",
		"grep -r halt src/",
		"kill -9 -10",
		"kill -9 1234",
		`rm -rf "/tmp/scratch"`,
		`rm -rf '/var/tmp/x'`,
		"echo x | tee /dev/null",
	}

	for _, command := range commands {
		t.Run(command, func(t *testing.T) {
			sig, ok := lib.MatchDestructive(command)
			assert.False(t, ok, "unexpected match %v", sig)
		})
	}
}

func TestMatchTermination(t *testing.T) {
	lib := Default()

	testCases := []struct {
		segment string
		name    string
	}{
		{"ps aux | grep node | awk '{print $2}' | xargs kill", "process-pipeline-kill"},
		{"pgrep node | xargs kill -9", "process-pipeline-kill"},
		{"lsof -ti:3000 | xargs kill -9", "port-kill"},
		{"fuser -k 8080/tcp", "port-kill"},
		{"npx kill-port 3000", "port-kill"},
		{"pkill node", "pkill"},
		{"pkill -f myserver", "pkill"},
		{"sudo pkill -9 java", "pkill"},
		{"killall -9 myservice", "killall"},
		{"kill 1234", "kill"},
		{"kill -TERM $PID", "kill"},
		{"/bin/kill 42", "kill"},
		{"FOO=1 kill 42", "kill"},
		{"echo $(pkill node)", "pkill"},
		{`bash -c "pkill node"`, "pkill"},
		{`sh -c 'killall node'`, "killall"},
		{`bash -lc 'kill 123456789'`, "kill"},
		{"env kill 123456789", "kill"},
		{"env -i PATH=/bin kill 42", "kill"},
		{"time killall node", "killall"},
		{"nice -n 10 pkill java", "pkill"},
	}

	for _, tc := range testCases {
		t.Run(tc.segment, func(t *testing.T) {
			sig, ok := lib.MatchTermination(tc.segment)
			require.True(t, ok, "expected %q to match a termination signature", tc.segment)
			assert.Equal(t, tc.name, sig.Name)
		})
	}
}

func TestMatchTermination_NoMatch(t *testing.T) {
	lib := Default()

	segments := []string{
		"echo kill",
		"grep -rn killall docs/",
		"go test ./... -run TestKill",
		"ps aux",
		"npm run dev",
		"echo 'kill me'",
		`git commit -m "kill stale workers"`,
		`sh -c "echo killing"`,
	}

	for _, segment := range segments {
		t.Run(segment, func(t *testing.T) {
			_, ok := lib.MatchTermination(segment)
			assert.False(t, ok)
		})
	}
}

func TestMatchCarveOut(t *testing.T) {
	lib := Default()

	testCases := []struct {
		segment string
		name    string
		ok      bool
	}{
		{"kill -0 12345", "signal-zero-probe", true},
		{"kill -0 $PID 2>/dev/null", "signal-zero-probe", true},
		{"kill $PID", "variable-target", true},
		{`kill -TERM "${SERVER_PID}"`, "variable-target", true},
		{"kill $!", "variable-target", true},
		{"kill 1234567", "short-pid", true},
		{"kill -15 42", "short-pid", true},
		{"kill 12345678", "", false},
		{`pkill -f "very-specific-name"`, "specific-pattern", true},
		{`pkill -f 'abcde'`, "specific-pattern", true},
		{`pkill -9 -f "my-dev-server"`, "specific-pattern", true},
		{`pkill -f "abcd"`, "", false},
		{"pkill -f myserver", "", false},
		{`pgrep -f "my-worker" | xargs kill`, "pgrep-xargs-kill", true},
		{`pgrep -f 'my-worker' | xargs -r kill -TERM`, "pgrep-xargs-kill", true},
		{`pgrep -f "node" | xargs kill`, "", false},
		{"killall -9 myservice", "", false},
		{"kill 42 43", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.segment, func(t *testing.T) {
			sig, ok := lib.MatchCarveOut(tc.segment)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				require.NotNil(t, sig)
				assert.Equal(t, tc.name, sig.Name)
				assert.Equal(t, ClassCarveOut, sig.Class)
			}
		})
	}
}

func TestNew_CustomBoundaries(t *testing.T) {
	lib := New(Options{MaxPIDDigits: 3, MinPatternLength: 8})

	_, ok := lib.MatchCarveOut("kill 123")
	assert.True(t, ok)
	_, ok = lib.MatchCarveOut("kill 1234")
	assert.False(t, ok)

	_, ok = lib.MatchCarveOut(`pkill -f "abcdefg"`)
	assert.False(t, ok)
	_, ok = lib.MatchCarveOut(`pkill -f "abcdefgh"`)
	assert.True(t, ok)
}

func TestNew_ZeroOptionsUseDefaults(t *testing.T) {
	lib := New(Options{})
	assert.Equal(t, DefaultMaxPIDDigits, lib.Options().MaxPIDDigits)
	assert.Equal(t, DefaultMinPatternLength, lib.Options().MinPatternLength)
}

func TestAllowsURL(t *testing.T) {
	lib := Default()

	assert.True(t, lib.AllowsURL("https://github.com/org/repo"))
	assert.True(t, lib.AllowsURL("https://pkg.go.dev/regexp"))
	assert.True(t, lib.AllowsURL("https://raw.githubusercontent.com/org/repo/main/README.md"))

	assert.False(t, lib.AllowsURL("https://evil.example.com/payload"))
	assert.False(t, lib.AllowsURL("http://github.com/org/repo"))
	assert.False(t, lib.AllowsURL("https://github.com.evil.example/"))
	assert.False(t, lib.AllowsURL("HTTPS://GITHUB.COM/org/repo"))
	assert.False(t, lib.AllowsURL(""))
}

func TestAllowsURL_ExtraPrefixes(t *testing.T) {
	lib := New(Options{ExtraAllowedPrefixes: []string{"https://internal.example.com/docs/", "  "}})

	assert.True(t, lib.AllowsURL("https://internal.example.com/docs/api"))
	assert.True(t, lib.AllowsURL("https://github.com/org/repo"))
	assert.Len(t, lib.AllowedPrefixes(), len(defaultAllowedPrefixes)+1)
}

func TestSegments(t *testing.T) {
	lib := Default()

	testCases := []struct {
		command string
		want    []string
	}{
		{"ls", []string{"ls"}},
		{"kill -0 1 && pkill node", []string{"kill -0 1", "pkill node"}},
		{"a; b || c", []string{"a", "b", "c"}},
		{"a\nb", []string{"a", "b"}},
		{"sleep 5 & kill $!", []string{"sleep 5", "kill $!"}},
		{"ps aux | grep x | xargs kill", []string{"ps aux | grep x | xargs kill"}},
		{"kill -0 1 2>&1", []string{"kill -0 1 2>&1"}},
		{"  ;  ", []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.command, func(t *testing.T) {
			assert.Equal(t, tc.want, lib.Segments(tc.command))
		})
	}
}

func TestSignatures_HaveUniqueNames(t *testing.T) {
	lib := Default()
	seen := map[string]bool{}

	all := append(append(append([]*Signature{}, lib.Destructive()...), lib.Termination()...), lib.CarveOuts()...)
	for _, sig := range all {
		assert.False(t, seen[sig.Name], "duplicate signature %s", sig.Name)
		seen[sig.Name] = true
		assert.NotEmpty(t, sig.Description)
		assert.NotEmpty(t, sig.Pattern())
	}
}
