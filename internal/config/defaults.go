package config

const (
	defaultRootDir             = "~/.local/share/nexus/registros"
	defaultLogDir              = "~/.local/share/nexus/logs"
	defaultDatabasePath        = "~/.local/share/nexus/pendencias.db"
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	defaultPollIntervalSeconds = 10
	defaultNtfyRequestTimeout  = 10
)

// defaultSituations is the historical pipeline shipped with the system.
var defaultSituations = []string{
	"Novo contato",
	"Proposta enviada",
	"Retorno pendente",
	"Em negociação",
	"Proposta aprovada",
	"Entrada pendente",
	"Venda Concluída",
	"Venda Perdida",
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			RootDir: defaultRootDir,
			LogDir:  defaultLogDir,
		},
		Pipeline: Pipeline{
			Situations: append([]string(nil), defaultSituations...),
		},
		Watch: Watch{
			PollIntervalSeconds: defaultPollIntervalSeconds,
			MonitorArchived:     true,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNtfyRequestTimeout,
			Changes:        true,
			Errors:         true,
		},
		Database: Database{
			Path: defaultDatabasePath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
