package attendance

// State 进程内的完整考勤状态。各组件共享同一课表与名单，
// 通过显式句柄传递，不使用全局单例。
type State struct {
	Catalog   *Catalog
	Roster    *Roster
	Ledger    *Ledger
	Directory *Directory
	Gate      *CredentialGate
	Stats     *Engine
}

// NewState 以默认文档创建状态
func NewState(catalog *Catalog, hasher Hasher) *State {
	return LoadFrom(catalog, DefaultDocument(catalog), hasher)
}

// LoadFrom 由文档构建状态（文档内容会被复制）
func LoadFrom(catalog *Catalog, doc Document, hasher Hasher) *State {
	students := doc.Students
	if len(students) == 0 {
		students = DefaultRoster()
	}
	teachers := doc.Teachers
	if teachers == nil {
		teachers = SeedDirectory(catalog)
	}
	hash := doc.PasswordHash
	if hash == "" {
		hash = DefaultSecretHash()
	}

	roster := NewRoster(students)
	ledger := NewLedger(catalog, roster, doc.Presences)
	directory := NewDirectory(catalog, teachers)
	return &State{
		Catalog:   catalog,
		Roster:    roster,
		Ledger:    ledger,
		Directory: directory,
		Gate:      NewCredentialGate(hash, hasher),
		Stats:     NewEngine(catalog, directory, ledger, roster),
	}
}

// Snapshot 导出为持久化文档；LoadFrom(Snapshot()) 得到等价状态
func (s *State) Snapshot() Document {
	return Document{
		Students:     s.Roster.Names(),
		Presences:    s.Ledger.snapshot(),
		PasswordHash: s.Gate.Hash(),
		Teachers:     s.Directory.snapshot(),
	}
}
