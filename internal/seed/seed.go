// Package seed loads demo users and tasks from a YAML fixture.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"taskmanager/internal/auth"
	"taskmanager/internal/model"
	"taskmanager/internal/repository"
)

// DefaultFixture is used when no fixture file is supplied.
//
//go:embed fixtures.yaml
var DefaultFixture []byte

const dateLayout = "2006-01-02"

// Fixture is the top-level YAML document.
type Fixture struct {
	Users []UserFixture `yaml:"users"`
}

// UserFixture describes one account and the tasks it owns.
type UserFixture struct {
	Email    string        `yaml:"email"`
	Password string        `yaml:"password"`
	Name     string        `yaml:"name"`
	Tasks    []TaskFixture `yaml:"tasks"`
}

// TaskFixture describes one task. Empty status, priority and date take the
// same defaults as the API.
type TaskFixture struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Status      string `yaml:"status"`
	Priority    string `yaml:"priority"`
	Date        string `yaml:"date"`
}

// Result summarizes a seed run.
type Result struct {
	UsersCreated int
	UsersSkipped int
	TasksCreated int
}

// Parse decodes and validates a fixture document.
func Parse(data []byte) (*Fixture, error) {
	var fx Fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}

	seen := make(map[string]bool, len(fx.Users))
	for i, u := range fx.Users {
		email := strings.TrimSpace(u.Email)
		if email == "" || u.Password == "" {
			return nil, fmt.Errorf("user %d: email and password are required", i)
		}
		if seen[email] {
			return nil, fmt.Errorf("user %d: duplicate email %q", i, email)
		}
		seen[email] = true

		for j, t := range u.Tasks {
			if strings.TrimSpace(t.Title) == "" {
				return nil, fmt.Errorf("user %s task %d: title is required", email, j)
			}
			if t.Status != "" && !model.TaskStatus(t.Status).Valid() {
				return nil, fmt.Errorf("user %s task %d: unknown status %q", email, j, t.Status)
			}
			if t.Priority != "" && !model.TaskPriority(t.Priority).Valid() {
				return nil, fmt.Errorf("user %s task %d: unknown priority %q", email, j, t.Priority)
			}
			if t.Date != "" {
				if _, err := time.Parse(dateLayout, t.Date); err != nil {
					return nil, fmt.Errorf("user %s task %d: date must be YYYY-MM-DD: %w", email, j, err)
				}
			}
		}
	}
	return &fx, nil
}

// Seeder writes fixtures through the regular repositories.
type Seeder struct {
	users  repository.UserRepository
	tasks  repository.TaskRepository
	hasher *auth.PasswordHasher
	log    *slog.Logger
	now    func() time.Time
}

// NewSeeder creates a seeder.
func NewSeeder(users repository.UserRepository, tasks repository.TaskRepository, hasher *auth.PasswordHasher, log *slog.Logger) *Seeder {
	return &Seeder{users: users, tasks: tasks, hasher: hasher, log: log, now: time.Now}
}

// Run creates every fixture user that does not exist yet, along with its
// tasks. Users whose email is already registered are left untouched, so the
// run is repeatable.
func (s *Seeder) Run(ctx context.Context, fx *Fixture) (Result, error) {
	var res Result
	for _, u := range fx.Users {
		email := strings.TrimSpace(u.Email)

		taken, err := s.users.EmailTaken(ctx, email)
		if err != nil {
			return res, fmt.Errorf("look up %s: %w", email, err)
		}
		if taken {
			s.log.Info("user exists, skipping", slog.String("email", email))
			res.UsersSkipped++
			continue
		}

		hash, err := s.hasher.Hash(u.Password)
		if err != nil {
			return res, fmt.Errorf("hash password for %s: %w", email, err)
		}
		user := &model.User{Email: email, PasswordHash: hash, Name: strings.TrimSpace(u.Name)}
		if err := s.users.Create(ctx, user); err != nil {
			return res, fmt.Errorf("create user %s: %w", email, err)
		}
		res.UsersCreated++

		for _, t := range u.Tasks {
			task := s.buildTask(user.ID, t)
			if err := s.tasks.Create(ctx, task); err != nil {
				return res, fmt.Errorf("create task %q for %s: %w", t.Title, email, err)
			}
			res.TasksCreated++
		}
		s.log.Info("user seeded", slog.String("email", email), slog.Int("tasks", len(u.Tasks)))
	}
	return res, nil
}

func (s *Seeder) buildTask(userID uint, t TaskFixture) *model.Task {
	task := &model.Task{
		Title:    strings.TrimSpace(t.Title),
		Status:   model.StatusNotStarted,
		Priority: model.PriorityLow,
		Date:     model.DateOf(s.now()),
		UserID:   userID,
	}
	if t.Description != "" {
		desc := t.Description
		task.Description = &desc
	}
	if t.Status != "" {
		task.Status = model.TaskStatus(t.Status)
	}
	if t.Priority != "" {
		task.Priority = model.TaskPriority(t.Priority)
	}
	if t.Date != "" {
		// validated in Parse
		task.Date, _ = time.Parse(dateLayout, t.Date)
	}
	return task
}
