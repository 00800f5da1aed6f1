package directory_test

import (
	"testing"

	"nexus/internal/directory"
	"nexus/internal/pendency"
	"nexus/internal/testsupport"
)

const sheetHeader = "CODIGO_USUARIO;NOME_USUARIO;SETOR_USUARIO;TELEFONE_USUARIO;E-MAIL_USUARIO;COMPUTADOR_USUARIO;CARGO_USUARIO;NIVEL_USUARIO"

func loadedService(t *testing.T, rows ...string) *directory.Service {
	t.Helper()
	path := testsupport.WriteUsersCSV(t, rows...)
	svc := directory.New(path)
	if err := svc.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return svc
}

func TestLoadParsesSemicolonSheet(t *testing.T) {
	svc := loadedService(t,
		sheetHeader,
		"1;José Silva;Vendas;4731;jose@empresa.com.br;PC-01;Vendedor;2",
		"2;Maria Souza;Vendas;4732;maria@empresa.com.br;PC-02;Supervisora;3",
		"3;Carlos Lima;Assistência;4733;carlos@empresa.com.br;PC-03;Técnico;1",
	)

	if svc.Len() != 3 {
		t.Fatalf("expected 3 users, got %d", svc.Len())
	}

	user, ok := svc.Lookup("José Silva")
	if !ok {
		t.Fatal("lookup failed")
	}
	if user.Code != 1 || user.Sector != "Vendas" || user.Level != 2 {
		t.Fatalf("unexpected user: %#v", user)
	}
}

func TestLookupIsAccentAndCaseInsensitive(t *testing.T) {
	svc := loadedService(t,
		sheetHeader,
		"1;José Silva;Vendas;;;;Vendedor;2",
	)

	for _, query := range []string{"josé silva", "JOSE SILVA", "Jose Silva"} {
		if _, ok := svc.Lookup(query); !ok {
			t.Errorf("lookup %q failed", query)
		}
	}
	if _, ok := svc.Lookup("Maria"); ok {
		t.Error("unknown name must not resolve")
	}
}

func TestParenthesizedHeaderVariant(t *testing.T) {
	svc := loadedService(t,
		"(CODIGO_USUARIO);(NOME_USUARIO);(SETOR_USUARIO);(NIVEL_USUARIO)",
		"7;Ana Paula;Compras;4",
	)

	user, ok := svc.Lookup("Ana Paula")
	if !ok || user.Code != 7 || user.Level != 4 {
		t.Fatalf("parenthesized headers not handled: %#v (ok=%v)", user, ok)
	}
}

func TestBOMAndBlankRowsAreTolerated(t *testing.T) {
	svc := loadedService(t,
		"\ufeff"+sheetHeader,
		"1;José Silva;Vendas;;;;;2",
		";;;;;;",
		"abc;Quebrado;Vendas;;;;;1",
	)

	if svc.Len() != 1 {
		t.Fatalf("expected 1 valid user, got %d", svc.Len())
	}
}

func TestUsersInSectorSorted(t *testing.T) {
	svc := loadedService(t,
		sheetHeader,
		"1;Zeca Moura;Vendas;;;;;2",
		"2;Ana Paula;Vendas;;;;;2",
		"3;Carlos Lima;Assistência;;;;;1",
	)

	users := svc.UsersInSector("Vendas")
	if len(users) != 2 || users[0].Name != "Ana Paula" || users[1].Name != "Zeca Moura" {
		t.Fatalf("unexpected order: %#v", users)
	}

	sectors := svc.Sectors()
	if len(sectors) != 2 || sectors[0] != "Assistência" || sectors[1] != "Vendas" {
		t.Fatalf("sectors = %#v", sectors)
	}
}

func TestCanEditLevels(t *testing.T) {
	record := &pendency.Pendency{User: "José Silva", Sector: "Vendas"}

	cases := []struct {
		name   string
		level  int
		actor  string
		sector string
		want   bool
	}{
		{"read-only never edits", directory.LevelReadOnly, "José Silva", "Vendas", false},
		{"own records by responsible", directory.LevelOwnRecords, "José Silva", "Vendas", true},
		{"own records by other", directory.LevelOwnRecords, "Maria Souza", "Vendas", false},
		{"sector level same sector", directory.LevelSector, "Maria Souza", "Vendas", true},
		{"sector level other sector", directory.LevelSector, "Carlos Lima", "Assistência", false},
		{"unrestricted", directory.LevelUnrestricted, "Qualquer", "Outro", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := directory.CanEdit(tc.level, tc.actor, tc.sector, record); got != tc.want {
				t.Fatalf("CanEdit = %v, want %v", got, tc.want)
			}
		})
	}
}
