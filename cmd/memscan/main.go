// Command memscan is a CLI front end for the memscan library: it reads,
// writes, and scans another process's memory, driving the same
// read/write/search_value/search_between/search_by_addresses surface
// spec.md §6 defines. It replaces the teacher's single interactive
// bufio-prompt program with a cobra command tree, the way the chatlog and
// golang-debug siblings in this ecosystem build their own CLIs.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/zhuweiyou/memscan"
	"github.com/zhuweiyou/memscan/cmd/memscan/config"
	"github.com/zhuweiyou/memscan/process"
)

var (
	cfgPath string
	cfg     config.Config
	log     zerolog.Logger

	flagPID         uint32
	flagProcessName string
	flagWindowTitle string
	flagPermission  string
	flagLogLevel    string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "memscan",
		Short: "Read, write, and scan another process's memory",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			cfg = loaded
			if flagLogLevel != "" {
				cfg.LogLevel = flagLogLevel
			}
			log = newLogger(cfg.LogLevel)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().Uint32Var(&flagPID, "pid", 0, "target process ID")
	root.PersistentFlags().StringVar(&flagProcessName, "name", "", "target process name")
	root.PersistentFlags().StringVar(&flagWindowTitle, "title", "", "target window title (Windows only)")
	root.PersistentFlags().StringVar(&flagPermission, "permission", "", "read_only, write_only, read_write, or all")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "debug, info, warn, or error")

	root.AddCommand(newReadCmd(), newWriteCmd(), newScanCmd(), newNextCmd())
	return root
}

func newLogger(level string) zerolog.Logger {
	l, err := zerolog.ParseLevel(level)
	if err != nil {
		l = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(l).
		With().Timestamp().Logger()
}

// openSession resolves the --pid/--name/--title flags to a PID and opens
// a Session with the configured (or flag-overridden) permission set.
func openSession() (*memscan.Session, error) {
	pid, err := process.Resolve(process.Target{
		PID:         flagPID,
		ProcessName: flagProcessName,
		WindowTitle: flagWindowTitle,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve target process")
		return nil, err
	}

	permStr := cfg.DefaultPermission
	if flagPermission != "" {
		permStr = flagPermission
	}
	perm, err := permissionFromString(permStr)
	if err != nil {
		return nil, err
	}

	session, err := memscan.Open(pid, perm)
	if err != nil {
		log.Error().Err(err).Uint32("pid", pid).Msg("failed to open process")
		return nil, err
	}
	log.Debug().Uint32("pid", pid).Str("permission", permStr).Msg("session opened")
	return session, nil
}

func newReadCmd() *cobra.Command {
	var addrStr, typeStr string
	var length int

	cmd := &cobra.Command{
		Use:   "read",
		Short: "Read one typed value from the target's memory",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseLogicalType(typeStr)
			if err != nil {
				return err
			}
			addr, err := parseAddress(addrStr)
			if err != nil {
				return err
			}

			session, err := openSession()
			if err != nil {
				return err
			}
			defer session.Close()

			value, err := session.Read(addr, t, length)
			if err != nil {
				return err
			}
			fmt.Printf("%v\n", value)
			return nil
		},
	}

	cmd.Flags().StringVar(&addrStr, "addr", "", "address to read, e.g. 0x7ffe1000 (required)")
	cmd.Flags().StringVar(&typeStr, "type", "int", "bool, int, float, text, or bytes")
	cmd.Flags().IntVar(&length, "len", 4, "value length in bytes")
	cmd.MarkFlagRequired("addr")
	return cmd
}

func newWriteCmd() *cobra.Command {
	var addrStr, typeStr, valueStr string
	var length int

	cmd := &cobra.Command{
		Use:   "write",
		Short: "Write one typed value to the target's memory",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseLogicalType(typeStr)
			if err != nil {
				return err
			}
			addr, err := parseAddress(addrStr)
			if err != nil {
				return err
			}
			value, err := parseValue(t, valueStr)
			if err != nil {
				return err
			}

			session, err := openSession()
			if err != nil {
				return err
			}
			defer session.Close()

			if err := session.Write(addr, t, length, value); err != nil {
				log.Warn().Err(err).Str("addr", addrStr).Msg("write failed")
				return err
			}
			fmt.Println("ok")
			return nil
		},
	}

	cmd.Flags().StringVar(&addrStr, "addr", "", "address to write, e.g. 0x7ffe1000 (required)")
	cmd.Flags().StringVar(&typeStr, "type", "int", "bool, int, float, text, or bytes")
	cmd.Flags().IntVar(&length, "len", 4, "value length in bytes")
	cmd.Flags().StringVar(&valueStr, "value", "", "value to write (required)")
	cmd.MarkFlagRequired("addr")
	cmd.MarkFlagRequired("value")
	return cmd
}

func newScanCmd() *cobra.Command {
	var typeStr, predicateStr, valueStr, loStr, hiStr, outPath string
	var length int
	var writableOnly, showProgress bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Run a first scan and write the candidate address set to a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseLogicalType(typeStr)
			if err != nil {
				return err
			}
			pred, err := parsePredicate(predicateStr)
			if err != nil {
				return err
			}

			session, err := openSession()
			if err != nil {
				return err
			}
			defer session.Close()

			ctx := context.Background()
			progress := cfg.ReportProgress
			if cmd.Flags().Changed("progress") {
				progress = showProgress
			}

			var it *memscan.ScanIterator
			if pred == memscan.Between || pred == memscan.NotBetween {
				lo, err := parseValue(t, loStr)
				if err != nil {
					return err
				}
				hi, err := parseValue(t, hiStr)
				if err != nil {
					return err
				}
				it, err = session.SearchBetween(ctx, t, length, lo, hi, pred == memscan.NotBetween, progress, writableOnly)
				if err != nil {
					return err
				}
			} else {
				value, err := parseValue(t, valueStr)
				if err != nil {
					return err
				}
				it, err = session.SearchValue(ctx, t, length, value, pred, progress, writableOnly)
				if err != nil {
					return err
				}
			}

			var addresses []uint64
			for {
				match, ok := it.Next()
				if !ok {
					break
				}
				addresses = append(addresses, match.Address)
				if progress {
					log.Info().Float64("progress", match.Progress.Progress).Int("found", len(addresses)).Msg("scanning")
				}
			}
			if err := it.Err(); err != nil {
				return err
			}

			log.Info().Int("matches", len(addresses)).Msg("scan complete")
			return saveCandidates(outPath, candidateFile{
				Type:      typeStr,
				Length:    length,
				Addresses: addresses,
			})
		},
	}

	cmd.Flags().StringVar(&typeStr, "type", "int", "bool, int, float, text, or bytes")
	cmd.Flags().IntVar(&length, "len", 4, "value length in bytes")
	cmd.Flags().StringVar(&predicateStr, "predicate", "eq", "eq, ne, gt, lt, ge, le, between, or notbetween")
	cmd.Flags().StringVar(&valueStr, "value", "", "value to search for (ignored for between/notbetween)")
	cmd.Flags().StringVar(&loStr, "lo", "", "range lower bound, inclusive (between/notbetween only)")
	cmd.Flags().StringVar(&hiStr, "hi", "", "range upper bound, inclusive (between/notbetween only)")
	cmd.Flags().BoolVar(&writableOnly, "writable-only", false, "only scan writable regions")
	cmd.Flags().BoolVar(&showProgress, "progress", false, "log progress while scanning")
	cmd.Flags().StringVarP(&outPath, "out", "o", "candidates.json", "candidate file to write")
	return cmd
}

func newNextCmd() *cobra.Command {
	var inPath, outPath, predicateStr, valueStr, loStr, hiStr string

	cmd := &cobra.Command{
		Use:   "next",
		Short: "Re-verify a candidate set against a new predicate (the 'next scan' step)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cf, err := loadCandidates(inPath)
			if err != nil {
				return err
			}
			t, err := parseLogicalType(cf.Type)
			if err != nil {
				return err
			}
			pred, err := parsePredicate(predicateStr)
			if err != nil {
				return err
			}

			session, err := openSession()
			if err != nil {
				return err
			}
			defer session.Close()

			current, err := session.SearchByAddresses(t, cf.Length, cf.Addresses)
			if err != nil {
				return err
			}

			var lo, hi any
			if pred == memscan.Between || pred == memscan.NotBetween {
				if lo, err = parseValue(t, loStr); err != nil {
					return err
				}
				if hi, err = parseValue(t, hiStr); err != nil {
					return err
				}
			} else if valueStr != "" {
				if lo, err = parseValue(t, valueStr); err != nil {
					return err
				}
			}

			var survivors []uint64
			for _, m := range current {
				ok, err := matchesPredicate(t, pred, m.Value, lo, hi)
				if err != nil {
					return err
				}
				if ok {
					survivors = append(survivors, m.Address)
				}
			}

			log.Info().Int("before", len(cf.Addresses)).Int("after", len(survivors)).Msg("next scan complete")
			return saveCandidates(outPath, candidateFile{
				Type:      cf.Type,
				Length:    cf.Length,
				Addresses: survivors,
			})
		},
	}

	cmd.Flags().StringVarP(&inPath, "in", "i", "candidates.json", "candidate file to read")
	cmd.Flags().StringVarP(&outPath, "out", "o", "candidates.json", "candidate file to write")
	cmd.Flags().StringVar(&predicateStr, "predicate", "eq", "eq, ne, gt, lt, ge, le, between, or notbetween")
	cmd.Flags().StringVar(&valueStr, "value", "", "value to compare against (eq/ne/gt/lt/ge/le)")
	cmd.Flags().StringVar(&loStr, "lo", "", "range lower bound, inclusive (between/notbetween only)")
	cmd.Flags().StringVar(&hiStr, "hi", "", "range upper bound, inclusive (between/notbetween only)")
	return cmd
}

// matchesPredicate re-applies pred to an already-decoded value, for the
// "next scan" CLI workflow, which works from values SearchByAddresses
// already decoded rather than raw bytes.
func matchesPredicate(t memscan.LogicalType, pred memscan.Predicate, value, lo, hi any) (bool, error) {
	if pred == memscan.Equal || pred == memscan.NotEqual {
		eq := fmt.Sprintf("%v", value) == fmt.Sprintf("%v", lo)
		if pred == memscan.Equal {
			return eq, nil
		}
		return !eq, nil
	}

	key, err := valueToKey(t, value)
	if err != nil {
		return false, err
	}
	loKey, err := valueToKey(t, lo)
	if err != nil {
		return false, err
	}

	switch pred {
	case memscan.Greater, memscan.Less, memscan.GreaterOrEqual, memscan.LessOrEqual:
		c, err := memscan.CompareKeys(t, key, loKey)
		if err != nil {
			return false, err
		}
		switch pred {
		case memscan.Greater:
			return c > 0, nil
		case memscan.Less:
			return c < 0, nil
		case memscan.GreaterOrEqual:
			return c >= 0, nil
		default:
			return c <= 0, nil
		}

	case memscan.Between, memscan.NotBetween:
		hiKey, err := valueToKey(t, hi)
		if err != nil {
			return false, err
		}
		cLo, err := memscan.CompareKeys(t, key, loKey)
		if err != nil {
			return false, err
		}
		cHi, err := memscan.CompareKeys(t, key, hiKey)
		if err != nil {
			return false, err
		}
		if pred == memscan.Between {
			return cLo >= 0 && cHi <= 0, nil
		}
		return cLo < 0 || cHi > 0, nil

	default:
		return false, fmt.Errorf("unsupported predicate %v", pred)
	}
}

// valueToKey re-derives a NumericKey-shaped comparable from an
// already-decoded Go value (bool/int64/float64/string/[]byte), mirroring
// what NumericKey does for raw bytes.
func valueToKey(t memscan.LogicalType, value any) (any, error) {
	switch t {
	case memscan.Bool:
		b, _ := value.(bool)
		if b {
			return int64(1), nil
		}
		return int64(0), nil
	case memscan.Int:
		switch v := value.(type) {
		case int64:
			return v, nil
		case int:
			return int64(v), nil
		}
		return nil, fmt.Errorf("unexpected Int value %T", value)
	case memscan.Float:
		f, ok := value.(float64)
		if !ok {
			return nil, fmt.Errorf("unexpected Float value %T", value)
		}
		return f, nil
	case memscan.Text:
		s, _ := value.(string)
		return []byte(s), nil
	case memscan.Bytes:
		b, _ := value.([]byte)
		return b, nil
	default:
		return nil, fmt.Errorf("unsupported type %v", t)
	}
}
