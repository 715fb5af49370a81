package global

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/nathanieltooley/pokeduel/client/errorutils"
	"github.com/samber/lo"
)

const (
	mb = 1000000

	DEFAULT_MAX_LOG_SIZE = 2.5 * mb
	DEFAULT_MAX_ARCHIVES = 2
)

// rollingFileWriter appends to <dir>/<name>.log. Once that file grows past maxSize it is
// archived as <name>-1.log, older archives shift up by one and anything past maxArchives is removed.
type rollingFileWriter struct {
	mu *sync.Mutex

	FileDirectory string
	FileName      string

	maxSize     int64
	maxArchives int
}

func NewRollingFileWriter(fileDir string, fileName string) rollingFileWriter {
	absFileDir := errorutils.Must(filepath.Abs(fileDir))

	if err := os.MkdirAll(absFileDir, 0750); err != nil {
		panic(err)
	}

	return rollingFileWriter{
		mu:            &sync.Mutex{},
		FileDirectory: absFileDir,
		FileName:      fileName,
		maxSize:       DEFAULT_MAX_LOG_SIZE,
		maxArchives:   DEFAULT_MAX_ARCHIVES,
	}
}

func (w rollingFileWriter) Write(b []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	stats, err := os.Stat(w.mainLogPath())
	if err == nil && stats.Size() >= w.maxSize {
		if err := w.rotate(); err != nil {
			return 0, err
		}
	}

	mainLogFile, err := os.OpenFile(w.mainLogPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return 0, err
	}
	defer mainLogFile.Close()

	return mainLogFile.Write(b)
}

func (w rollingFileWriter) mainLogPath() string {
	return filepath.Join(w.FileDirectory, fmt.Sprintf("%s.log", w.FileName))
}

func (w rollingFileWriter) archivePath(index int) string {
	return filepath.Join(w.FileDirectory, fmt.Sprintf("%s-%d.log", w.FileName, index))
}

// archives returns the indices of every archived log, highest first
func (w rollingFileWriter) archives() ([]int, error) {
	matches, err := fs.Glob(os.DirFS(w.FileDirectory), w.FileName+"-*.log")
	if err != nil {
		return nil, err
	}

	indices := lo.FilterMap(matches, func(match string, _ int) (int, bool) {
		index, ok := archiveIndex(w.FileName, match)
		return index, ok
	})

	slices.Sort(indices)
	slices.Reverse(indices)

	return indices, nil
}

func (w rollingFileWriter) rotate() error {
	indices, err := w.archives()
	if err != nil {
		return err
	}

	// highest first so a rename never lands on a file that still has to move
	for _, index := range indices {
		if index >= w.maxArchives {
			if err := os.Remove(w.archivePath(index)); err != nil {
				return err
			}
			continue
		}

		if err := os.Rename(w.archivePath(index), w.archivePath(index+1)); err != nil {
			return err
		}
	}

	return os.Rename(w.mainLogPath(), w.archivePath(1))
}

// archiveIndex pulls N out of <baseName>-N.log. Files with anything else in place of N are ignored.
func archiveIndex(baseName string, fileName string) (int, bool) {
	trimmed, ok := strings.CutSuffix(filepath.Base(fileName), ".log")
	if !ok {
		return 0, false
	}

	indexStr, ok := strings.CutPrefix(trimmed, baseName+"-")
	if !ok {
		return 0, false
	}

	index, err := strconv.Atoi(indexStr)
	if err != nil || index < 1 {
		return 0, false
	}

	return index, true
}
