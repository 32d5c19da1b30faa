package tasks

import (
	"sync"

	"github.com/naton1/taskforge/api/schemas"
	"go.uber.org/zap"
)

// Manager owns the lifetime of every Task created in a session. It is an
// insertion-ordered in-memory registry; all listings preserve creation order.
// The registry is shared with the CLI layer, so access is mutex-guarded.
type Manager struct {
	mu     sync.Mutex
	tasks  []*schemas.Task
	parser *Parser
	log    *zap.Logger
}

// NewManager creates a task manager with its own parser.
func NewManager(logger *zap.Logger) *Manager {
	return &Manager{
		parser: NewParser(logger),
		log:    logger.Named("taskmanager"),
	}
}

// CreateTaskFromDescription parses the description and registers the
// resulting task. It always succeeds: the parser is a total function.
func (m *Manager) CreateTaskFromDescription(description string) *schemas.Task {
	task := m.parser.Parse(description)

	m.mu.Lock()
	m.tasks = append(m.tasks, task)
	m.mu.Unlock()

	m.log.Info("Created task",
		zap.String("task_id", task.ID),
		zap.String("name", task.Name),
		zap.String("category", string(task.Category)))
	return task
}

// Tasks returns all registered tasks in creation order.
func (m *Manager) Tasks() []*schemas.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*schemas.Task, len(m.tasks))
	copy(out, m.tasks)
	return out
}

// Get returns the task with the given ID, or nil if it is not registered.
func (m *Manager) Get(id string) *schemas.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// TasksByCategory returns all tasks in a category, preserving creation order.
func (m *Manager) TasksByCategory(category schemas.TaskCategory) []*schemas.Task {
	return m.filter(func(t *schemas.Task) bool { return t.Category == category })
}

// TasksByDifficulty returns all tasks of a difficulty, preserving creation order.
func (m *Manager) TasksByDifficulty(difficulty schemas.TaskDifficulty) []*schemas.Task {
	return m.filter(func(t *schemas.Task) bool { return t.Difficulty == difficulty })
}

// MarkObjectiveComplete sets the completed flag on one objective of the given
// task. An out-of-range index is a silent no-op; the boolean result reports
// whether anything changed, so stricter callers can surface it.
func (m *Manager) MarkObjectiveComplete(task *schemas.Task, index int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if task == nil || index < 0 || index >= len(task.Objectives) {
		return false
	}
	task.Objectives[index].Completed = true
	m.log.Info("Marked objective complete",
		zap.String("task_id", task.ID),
		zap.Int("objective", index))
	return true
}

// IsTaskComplete reports whether every objective of the task is completed.
func (m *Manager) IsTaskComplete(task *schemas.Task) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return task.IsComplete()
}

// IncompleteTasks returns all tasks with at least one open objective.
func (m *Manager) IncompleteTasks() []*schemas.Task {
	return m.filter(func(t *schemas.Task) bool { return !t.IsComplete() })
}

// Remove deletes a task from the registry by ID. Removing an unknown ID is a
// no-op reported through the boolean result.
func (m *Manager) Remove(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, t := range m.tasks {
		if t.ID == id {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return true
		}
	}
	return false
}

func (m *Manager) filter(keep func(*schemas.Task) bool) []*schemas.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*schemas.Task
	for _, t := range m.tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}
