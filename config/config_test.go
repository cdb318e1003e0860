package config_test

import (
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/log"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mips32sim/config"
)

var _ = Describe("Config", func() {
	var tempDir string

	BeforeEach(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "config-test")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		_ = os.RemoveAll(tempDir)
	})

	Describe("Default", func() {
		It("should log at info level without an instruction limit", func() {
			cfg := config.Default()
			Expect(cfg.LogLevel).To(Equal("info"))
			Expect(cfg.MaxInstructions).To(BeZero())
			Expect(cfg.Interactive).To(BeFalse())
		})
	})

	Describe("Load", func() {
		It("should load YAML files", func() {
			path := filepath.Join(tempDir, "run.yaml")
			content := "program: sum.elf\nmax_instructions: 1000\nlog_level: debug\nentry_point: 0x00400020\n"
			Expect(os.WriteFile(path, []byte(content), 0644)).To(Succeed())

			cfg, err := config.Load(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Program).To(Equal("sum.elf"))
			Expect(cfg.MaxInstructions).To(Equal(uint64(1000)))
			Expect(cfg.LogLevel).To(Equal("debug"))
			Expect(cfg.EntryPoint).To(Equal(uint32(0x00400020)))
		})

		It("should load JSON files", func() {
			path := filepath.Join(tempDir, "run.json")
			content := `{"program": "sum.txt", "interactive": true}`
			Expect(os.WriteFile(path, []byte(content), 0644)).To(Succeed())

			cfg, err := config.Load(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Program).To(Equal("sum.txt"))
			Expect(cfg.Interactive).To(BeTrue())
		})

		It("should keep defaults for missing fields", func() {
			path := filepath.Join(tempDir, "partial.yml")
			Expect(os.WriteFile(path, []byte("program: a.elf\n"), 0644)).To(Succeed())

			cfg, err := config.Load(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.LogLevel).To(Equal("info"))
		})

		It("should round trip through Save", func() {
			for _, name := range []string{"saved.yaml", "saved.json"} {
				path := filepath.Join(tempDir, name)
				original := config.Default()
				original.Program = "prog.elf"
				original.StackPointer = 0x7FFF0000
				Expect(original.Save(path)).To(Succeed())

				loaded, err := config.Load(path)
				Expect(err).NotTo(HaveOccurred())
				Expect(loaded).To(Equal(original))
			}
		})

		It("should return error for non-existent file", func() {
			_, err := config.Load("/nonexistent/path/run.yaml")
			Expect(err).To(HaveOccurred())
		})

		It("should return error for invalid JSON", func() {
			path := filepath.Join(tempDir, "invalid.json")
			Expect(os.WriteFile(path, []byte("not valid json"), 0644)).To(Succeed())

			_, err := config.Load(path)
			Expect(err).To(HaveOccurred())
		})

		It("should return error for invalid YAML", func() {
			path := filepath.Join(tempDir, "invalid.yaml")
			Expect(os.WriteFile(path, []byte("max_instructions: [1, 2"), 0644)).To(Succeed())

			_, err := config.Load(path)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Validate", func() {
		var cfg *config.Config

		BeforeEach(func() {
			cfg = config.Default()
			cfg.Program = "prog.elf"
		})

		It("should accept a complete config", func() {
			Expect(cfg.Validate()).To(Succeed())
		})

		It("should require a program", func() {
			cfg.Program = ""
			Expect(cfg.Validate()).To(MatchError(ContainSubstring("program")))
		})

		It("should reject unknown log levels", func() {
			cfg.LogLevel = "verbose"
			Expect(cfg.Validate()).To(MatchError(ContainSubstring("log_level")))
		})

		It("should reject an unaligned entry point", func() {
			cfg.EntryPoint = 0x00400002
			Expect(cfg.Validate()).To(MatchError(ContainSubstring("entry_point")))
		})

		It("should reject an unaligned stack pointer", func() {
			cfg.StackPointer = 0x7FFFEFFD
			Expect(cfg.Validate()).To(MatchError(ContainSubstring("stack_pointer")))
		})
	})

	DescribeTable("Level",
		func(name string, expected any) {
			cfg := config.Default()
			cfg.LogLevel = name
			lvl, err := cfg.Level()
			Expect(err).NotTo(HaveOccurred())
			Expect(lvl).To(Equal(expected))
		},
		Entry("trace", "trace", log.LevelTrace),
		Entry("debug", "debug", log.LevelDebug),
		Entry("info uppercase", "INFO", log.LevelInfo),
		Entry("warn", "warn", log.LevelWarn),
		Entry("error", "error", log.LevelError),
		Entry("crit", "crit", log.LevelCrit),
	)
})
