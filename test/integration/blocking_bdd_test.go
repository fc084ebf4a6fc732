//go:build integration

package integration

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cipher-shad0w/timeguardian/internal/domain"
	"github.com/cipher-shad0w/timeguardian/internal/infra"
	"github.com/cipher-shad0w/timeguardian/internal/usecase"
)

const pristineHosts = "127.0.0.1\tlocalhost\n::1\tlocalhost\n10.0.0.5\tnas.local\n"

var _ = Describe("Blocking Session", func() {
	var (
		tmpDir     string
		hostsPath  string
		backupPath string
		patcher    *infra.HostsFile
	)

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "timeguardian-integration-*")
		Expect(err).NotTo(HaveOccurred())

		hostsPath = filepath.Join(tmpDir, "hosts")
		backupPath = filepath.Join(tmpDir, "hosts.backup")
		err = os.WriteFile(hostsPath, []byte(pristineHosts), 0644)
		Expect(err).NotTo(HaveOccurred())

		patcher = infra.NewHostsFileWithPaths(hostsPath, backupPath, nil)
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	readHosts := func() string {
		data, err := os.ReadFile(hostsPath)
		Expect(err).NotTo(HaveOccurred())
		return string(data)
	}

	Describe("the patcher round-trip", func() {
		Context("when blocking and unblocking a domain set", func() {
			It("restores the hosts file byte-identical", func() {
				Expect(patcher.EnsureBackup()).To(Succeed())
				Expect(patcher.ApplyBlock([]string{"example.com", "other.com"})).To(Succeed())
				Expect(readHosts()).NotTo(Equal(pristineHosts))

				Expect(patcher.RemoveBlock()).To(Succeed())
				Expect(readHosts()).To(Equal(pristineHosts))
			})
		})

		Context("when applying the same domains twice", func() {
			It("keeps exactly one marker region", func() {
				domains := []string{"example.com", "", "example.com", "other.com"}
				Expect(patcher.ApplyBlock(domains)).To(Succeed())
				Expect(patcher.ApplyBlock(domains)).To(Succeed())

				content := readHosts()
				Expect(strings.Count(content, "# ===== TimeGuardian Temporary Hosts =====")).To(Equal(1))
				Expect(strings.Count(content, "# ===== End Temporary Hosts =====")).To(Equal(1))
				Expect(strings.Count(content, "127.0.0.1\texample.com")).To(Equal(1))
				Expect(strings.Count(content, "127.0.0.1\tother.com")).To(Equal(1))
			})
		})

		Context("when the backup already has content", func() {
			It("never overwrites it", func() {
				Expect(patcher.EnsureBackup()).To(Succeed())
				Expect(patcher.ApplyBlock([]string{"example.com"})).To(Succeed())

				// A second session start must not snapshot the blocked state.
				Expect(patcher.EnsureBackup()).To(Succeed())

				backup, err := os.ReadFile(backupPath)
				Expect(err).NotTo(HaveOccurred())
				Expect(string(backup)).To(Equal(pristineHosts))
			})
		})
	})

	Describe("a full session lifecycle", func() {
		It("blocks on start and restores on stop", func() {
			store := usecase.NewListStore()
			Expect(store.AddList("Work")).To(BeTrue())
			Expect(store.AddDomain(0, "example.com")).To(BeTrue())

			session := usecase.NewSession(patcher, nil)
			Expect(session.Start(time.Minute, store.SelectedDomains(), "deep work")).To(Succeed())
			Expect(session.State()).To(Equal(domain.StateBlocking))
			Expect(readHosts()).To(ContainSubstring("127.0.0.1\texample.com"))

			Expect(session.Stop()).To(Succeed())
			Expect(session.State()).To(Equal(domain.StateIdle))
			Expect(readHosts()).To(Equal(pristineHosts))
		})

		It("expires via ticks and removes the block exactly once", func() {
			now := time.Now()
			clock := now
			session := usecase.NewSessionWithClock(patcher, nil, func() time.Time { return clock })

			Expect(session.Start(500*time.Millisecond, []string{"example.com"}, "sprint")).To(Succeed())
			Expect(patcher.EnsureBackup()).To(Succeed()) // no-op: backup exists

			clock = now.Add(200 * time.Millisecond)
			expired, err := session.Tick()
			Expect(err).NotTo(HaveOccurred())
			Expect(expired).To(BeFalse())
			Expect(session.State()).To(Equal(domain.StateBlocking))

			clock = now.Add(500 * time.Millisecond)
			expired, err = session.Tick()
			Expect(err).NotTo(HaveOccurred())
			Expect(expired).To(BeTrue())
			Expect(session.State()).To(Equal(domain.StateIdle))
			Expect(readHosts()).To(Equal(pristineHosts))
		})
	})
})
