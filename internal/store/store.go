// Package store is the mutation engine and persistence layer for the task
// log. Every mutating operation runs as one critical section: take the
// advisory lock, read the log and counter state, parse the trailing window,
// apply exactly one mutation, write both files back atomically, release the
// lock. Read-only operations skip the lock entirely; atomic renames mean a
// concurrent reader always sees a complete file.
package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tasklog/internal/config"
	"tasklog/internal/fsutil"
	"tasklog/internal/journal"
	"tasklog/internal/state"
)

// Match is one search result.
type Match struct {
	ID      string `json:"id"`
	Done    bool   `json:"done"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// Store executes task operations against a single log file. It holds no
// cross-operation state: everything is re-read from disk inside each call,
// so any number of independent processes can share the same files.
type Store struct {
	opts        journal.Options
	logPath     string
	statePath   string
	lockPath    string
	lockTimeout time.Duration
	now         func() time.Time
}

// New builds a Store from the application configuration, resolving the log
// path and the shared state paths.
func New(cfg *config.AppConfig) (*Store, error) {
	layout, err := cfg.Layout()
	if err != nil {
		return nil, err
	}
	logPath, err := cfg.ResolvedLogPath()
	if err != nil {
		return nil, err
	}
	statePath, err := config.StatePath()
	if err != nil {
		return nil, err
	}
	lockPath, err := config.LockPath()
	if err != nil {
		return nil, err
	}
	return &Store{
		opts: journal.Options{
			DateLayout: layout,
			NoteIndent: cfg.NoteIndent,
			ScanWindow: cfg.ScanWindow,
		},
		logPath:     logPath,
		statePath:   statePath,
		lockPath:    lockPath,
		lockTimeout: DefaultLockTimeout,
		now:         time.Now,
	}, nil
}

func (s *Store) today() string {
	return s.now().Format(s.opts.DateLayout)
}

// LogPath returns the resolved path of the log file.
func (s *Store) LogPath() string {
	return s.logPath
}

func (s *Store) readLog() (string, error) {
	data, err := os.ReadFile(s.logPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrNotInitialized
		}
		return "", fmt.Errorf("read log %s: %w", s.logPath, err)
	}
	return string(data), nil
}

func (s *Store) loadCounters() (*state.Counters, error) {
	counters, err := state.Load(s.statePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotInitialized
		}
		return nil, err
	}
	return counters, nil
}

func (s *Store) writeLog(doc *journal.Document) error {
	if err := fsutil.AtomicWriteFile(s.logPath, []byte(doc.Render()), 0o644); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

// Init ensures the counter state file and the log file exist, creating the
// log only if absent, and makes sure the log ends with a section for today.
func (s *Store) Init(ctx context.Context) error {
	release, err := s.acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	if err := os.MkdirAll(filepath.Dir(s.logPath), 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	if _, err := os.Stat(s.statePath); errors.Is(err, fs.ErrNotExist) {
		if err := state.NewCounters().Save(s.statePath); err != nil {
			return err
		}
	} else if err != nil {
		return fmt.Errorf("stat %s: %w", s.statePath, err)
	}

	content, err := os.ReadFile(s.logPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("read log %s: %w", s.logPath, err)
		}
		content = nil
	}

	doc := journal.Parse(string(content), s.opts)
	today := s.today()
	if doc.HasSection(today) {
		return nil
	}
	doc.EnsureSection(today)
	return s.writeLog(doc)
}

// CreateTask allocates the next ID for tag and appends a new open task under
// today's section, creating the section if it does not exist in the window.
func (s *Store) CreateTask(ctx context.Context, tag, title string) (string, error) {
	tag = strings.TrimSpace(tag)
	title = strings.TrimSpace(title)
	if title == "" {
		return "", fmt.Errorf("%w: title must not be empty", ErrInvalidInput)
	}
	if strings.Contains(title, "\n") {
		return "", fmt.Errorf("%w: title must be a single line", ErrInvalidInput)
	}
	if !journal.ValidTag(tag) {
		return "", fmt.Errorf("%w: tag %q must be lowercase alphanumeric (hyphen-separated)", ErrInvalidInput, tag)
	}

	release, err := s.acquire(ctx)
	if err != nil {
		return "", err
	}
	defer release()

	content, err := s.readLog()
	if err != nil {
		return "", err
	}
	counters, err := s.loadCounters()
	if err != nil {
		return "", err
	}

	doc := journal.Parse(content, s.opts)
	task := &journal.Task{
		Tag:    tag,
		Number: counters.Reserve(tag),
		Title:  title,
	}

	today := s.today()
	doc.EnsureSection(today)
	doc.AppendTask(today, task)

	// Counter state first: a crash between the writes burns the reserved
	// number instead of handing it out again on the next create.
	if err := counters.Save(s.statePath); err != nil {
		return "", err
	}
	if err := s.writeLog(doc); err != nil {
		return "", err
	}
	return task.ID(), nil
}

// CompleteTask marks the task as done. Completing an already-done task is a
// no-op that still succeeds.
func (s *Store) CompleteTask(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: task ID must not be empty", ErrInvalidInput)
	}

	release, err := s.acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	content, err := s.readLog()
	if err != nil {
		return err
	}
	doc := journal.Parse(content, s.opts)
	task := doc.Find(id)
	if task == nil {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	if task.Done {
		return nil
	}
	task.Done = true
	return s.writeLog(doc)
}

// AddNote appends a note under the task, after any existing notes.
func (s *Store) AddNote(ctx context.Context, id, text string) error {
	id = strings.TrimSpace(id)
	text = strings.TrimSpace(text)
	if id == "" {
		return fmt.Errorf("%w: task ID must not be empty", ErrInvalidInput)
	}
	if text == "" {
		return fmt.Errorf("%w: note text must not be empty", ErrInvalidInput)
	}
	if strings.Contains(text, "\n") {
		return fmt.Errorf("%w: note text must be a single line", ErrInvalidInput)
	}

	release, err := s.acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	content, err := s.readLog()
	if err != nil {
		return err
	}
	doc := journal.Parse(content, s.opts)
	task := doc.Find(id)
	if task == nil {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	task.Notes = append(task.Notes, text)
	return s.writeLog(doc)
}

// SearchTasks returns every task in the window whose title or any note
// contains query case-insensitively, in file encounter order. An optional
// tag restricts matches to that tag. Runs without the lock: the atomic
// writer guarantees a complete snapshot.
func (s *Store) SearchTasks(query, tag string) ([]Match, error) {
	content, err := s.readLog()
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	var matches []Match
	for _, task := range journal.Parse(content, s.opts).Tasks() {
		if tag != "" && task.Tag != tag {
			continue
		}
		snippet, ok := matchTask(task, q)
		if !ok {
			continue
		}
		matches = append(matches, Match{
			ID:      task.ID(),
			Done:    task.Done,
			Title:   task.Title,
			Snippet: snippet,
		})
	}
	return matches, nil
}

func matchTask(task *journal.Task, q string) (string, bool) {
	if strings.Contains(strings.ToLower(task.Title), q) {
		return task.Title, true
	}
	for _, note := range task.Notes {
		if strings.Contains(strings.ToLower(note), q) {
			return note, true
		}
	}
	return "", false
}

// ListTasks returns every task visible in the window in file encounter
// order. Lock-free like SearchTasks.
func (s *Store) ListTasks() ([]journal.Task, error) {
	content, err := s.readLog()
	if err != nil {
		return nil, err
	}
	var out []journal.Task
	for _, task := range journal.Parse(content, s.opts).Tasks() {
		out = append(out, *task)
	}
	return out, nil
}

// TodaySection returns the verbatim text of today's section, or an empty
// string if the log has no section for today. Lock-free like SearchTasks.
func (s *Store) TodaySection() (string, error) {
	content, err := s.readLog()
	if err != nil {
		return "", err
	}
	return journal.Parse(content, s.opts).SectionText(s.today()), nil
}
