package calendar

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// FileCalendar implements Calendar using a local holiday file. Dates the
// file does not list are regular days.
type FileCalendar struct {
	filePath string
	logger   *zap.Logger
	days     map[string]DayInfo // key: "YYYY-MM-DD"
}

// NewFileCalendar creates a new FileCalendar instance
func NewFileCalendar(filePath string, logger *zap.Logger) *FileCalendar {
	return &FileCalendar{
		filePath: filePath,
		logger:   logger,
		days:     make(map[string]DayInfo),
	}
}

type yamlFile struct {
	Holidays []yamlDay `yaml:"holidays"`
}

type yamlDay struct {
	Date string `yaml:"date"`
	Type string `yaml:"type"`
	Note string `yaml:"note"`
}

// Load reads the file. Files ending in .yaml or .yml hold a "holidays" list;
// anything else is the line format "YYYY-MM-DD type [note]".
func (fc *FileCalendar) Load() error {
	file, err := os.Open(fc.filePath)
	if err != nil {
		return fmt.Errorf("failed to open calendar file: %w", err)
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(fc.filePath)) {
	case ".yaml", ".yml":
		err = fc.loadYAML(file)
	default:
		err = fc.loadText(file)
	}
	if err != nil {
		return err
	}

	fc.logger.Info("Calendar file loaded",
		zap.String("file", fc.filePath),
		zap.Int("days", len(fc.days)))
	return nil
}

func (fc *FileCalendar) loadText(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Example: 2025-01-01 holiday New Year's Day
		parts := strings.SplitN(line, " ", 3)
		if len(parts) < 2 {
			fc.logger.Warn("Invalid line format", zap.String("line", line))
			continue
		}
		note := ""
		if len(parts) == 3 {
			note = strings.TrimSpace(parts[2])
		}
		fc.add(parts[0], parts[1], note)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading calendar file: %w", err)
	}
	return nil
}

func (fc *FileCalendar) loadYAML(r io.Reader) error {
	var doc yamlFile
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return fmt.Errorf("failed to parse calendar yaml: %w", err)
	}
	for _, d := range doc.Holidays {
		typ := d.Type
		if typ == "" {
			typ = DayTypeHoliday.String()
		}
		fc.add(d.Date, typ, d.Note)
	}
	return nil
}

func (fc *FileCalendar) add(dateStr, typeStr, note string) {
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		fc.logger.Warn("Failed to parse date", zap.String("date", dateStr), zap.Error(err))
		return
	}
	dayType, err := ParseDayType(typeStr)
	if err != nil {
		fc.logger.Warn("Unknown day type", zap.String("type", typeStr))
		return
	}
	fc.days[dateStr] = DayInfo{Date: date, Type: dayType, Note: note}
}

// GetDayInfo returns detailed info for a specific day
func (fc *FileCalendar) GetDayInfo(date time.Time) (*DayInfo, error) {
	if info, ok := fc.days[date.Format("2006-01-02")]; ok {
		return &info, nil
	}
	return regularDay(date), nil
}

// GetMonthInfo returns calendar info for the entire month
func (fc *FileCalendar) GetMonthInfo(year int, month time.Month) (*MonthInfo, error) {
	return monthOf(year, month, fc.GetDayInfo)
}

// Len returns the number of listed days.
func (fc *FileCalendar) Len() int {
	return len(fc.days)
}
