package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Tool identifies one tutorial in the catalog.
type Tool int

const (
	JMeter Tool = iota
	Selenium
	SonarQube
	Docker
	GitGitHub
	Kubernetes
	BashCommands
	Vi
	Ansible
	NiFi
	Groovy

	toolCount
)

// Entry is one catalog record describing a single tutorial page.
type Entry struct {
	Tool        Tool   `json:"-"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Path        string `json:"path"`
	Icon        string `json:"icon"`
	Accent      Accent `json:"accent"`
}

// Accent is the pair of colours used to decorate a tool card.
type Accent struct {
	From string `json:"from"`
	To   string `json:"to"`
}

var (
	// ErrDuplicatePath is returned by Validate when two entries share a path.
	ErrDuplicatePath = errors.New("duplicate catalog path")
	// ErrDuplicateTitle is returned by Validate when two entries share a title.
	ErrDuplicateTitle = errors.New("duplicate catalog title")
	// ErrInvalidEntry is returned by Validate for entries with a missing or relative path.
	ErrInvalidEntry = errors.New("invalid catalog entry")
)

// entries is indexed by Tool; the array length pins the set of tools.
var entries = [toolCount]Entry{
	JMeter: {
		Title:       "JMeter",
		Description: "Learn how to perform performance testing using Apache JMeter with examples and step-by-step guides.",
		Path:        "/jmeter",
		Icon:        "🧪",
		Accent:      Accent{From: "#a855f7", To: "#4f46e5"},
	},
	Selenium: {
		Title:       "Selenium",
		Description: "Explore Selenium for automation testing with practical tutorials, code snippets, and tips.",
		Path:        "/selenium",
		Icon:        "🤖",
		Accent:      Accent{From: "#10b981", To: "#16a34a"},
	},
	SonarQube: {
		Title:       "SonarQube",
		Description: "Understand code quality analysis with SonarQube, including setup, integration, and CI/CD.",
		Path:        "/sonarqube",
		Icon:        "📊",
		Accent:      Accent{From: "#ef4444", To: "#db2777"},
	},
	Docker: {
		Title:       "Docker",
		Description: "Learn containerization with Docker, including image creation, Dockerfiles, and running containers.",
		Path:        "/docker",
		Icon:        "🐳",
		Accent:      Accent{From: "#3b82f6", To: "#0891b2"},
	},
	GitGitHub: {
		Title:       "Git & GitHub",
		Description: "Master version control with Git and collaboration through GitHub, including branching, PRs, and workflow.",
		Path:        "/git-github",
		Icon:        "🔧",
		Accent:      Accent{From: "#6b7280", To: "#475569"},
	},
	Kubernetes: {
		Title:       "Kubernetes",
		Description: "Orchestrate containers at scale using Kubernetes with deployment, scaling, and management tips.",
		Path:        "/kubernetes",
		Icon:        "☸️",
		Accent:      Accent{From: "#ec4899", To: "#e11d48"},
	},
	BashCommands: {
		Title:       "Bash Commands",
		Description: "Essential Bash commands cheat sheet with syntax highlighting and practical usage examples.",
		Path:        "/bash-commands",
		Icon:        "💻",
		Accent:      Accent{From: "#eab308", To: "#ea580c"},
	},
	Vi: {
		Title:       "vi / Vim",
		Description: "Master the vi text editor in Linux with modes, navigation, editing commands, and quick reference guides.",
		Path:        "/vi",
		Icon:        "⌨️",
		Accent:      Accent{From: "#22c55e", To: "#0d9488"},
	},
	Ansible: {
		Title:       "Ansible",
		Description: "Automate configuration management and deployments with Ansible inventories and playbooks.",
		Path:        "/ansible",
		Icon:        "🅰️",
		Accent:      Accent{From: "#f43f5e", To: "#b91c1c"},
	},
	NiFi: {
		Title:       "Apache NiFi",
		Description: "Automate and manage data flows between systems with processors, connections, and FlowFiles.",
		Path:        "/nifi",
		Icon:        "🌊",
		Accent:      Accent{From: "#0ea5e9", To: "#2563eb"},
	},
	Groovy: {
		Title:       "Groovy",
		Description: "Script the JVM with Groovy: closures, collections, and Jenkins pipelines.",
		Path:        "/groovy",
		Icon:        "⭐",
		Accent:      Accent{From: "#6366f1", To: "#7c3aed"},
	},
}

func init() {
	for i := range entries {
		entries[i].Tool = Tool(i)
	}
	if err := Validate(entries[:]); err != nil {
		panic(fmt.Sprintf("catalog: %v", err))
	}
}

// All returns the catalog in display order. The returned slice is a copy.
func All() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries[:])
	return out
}

// Tools returns every catalog tag in display order.
func Tools() []Tool {
	out := make([]Tool, toolCount)
	for i := range out {
		out[i] = Tool(i)
	}
	return out
}

// Len reports the number of tools in the catalog.
func Len() int {
	return int(toolCount)
}

// Lookup returns the entry registered for path.
func Lookup(path string) (Entry, bool) {
	for _, e := range entries {
		if e.Path == path {
			return e, true
		}
	}
	return Entry{}, false
}

// Valid reports whether t is a member of the catalog.
func (t Tool) Valid() bool {
	return t >= 0 && t < toolCount
}

// Entry returns the catalog record for t. It panics for tools outside the catalog.
func (t Tool) Entry() Entry {
	if !t.Valid() {
		panic(fmt.Sprintf("catalog: unknown tool %d", int(t)))
	}
	return entries[t]
}

// Slug is the path without its leading slash, e.g. "git-github".
func (t Tool) Slug() string {
	return strings.TrimPrefix(t.Entry().Path, "/")
}

func (t Tool) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Tool(%d)", int(t))
	}
	return t.Slug()
}

// Validate checks that every entry has an absolute path and that paths and titles
// are unique.
func Validate(list []Entry) error {
	paths := make(map[string]struct{}, len(list))
	titles := make(map[string]struct{}, len(list))
	for _, e := range list {
		if e.Title == "" || !strings.HasPrefix(e.Path, "/") || e.Path == "/" {
			return fmt.Errorf("%w: %q at %q", ErrInvalidEntry, e.Title, e.Path)
		}
		if _, ok := paths[e.Path]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicatePath, e.Path)
		}
		if _, ok := titles[e.Title]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateTitle, e.Title)
		}
		paths[e.Path] = struct{}{}
		titles[e.Title] = struct{}{}
	}
	return nil
}
