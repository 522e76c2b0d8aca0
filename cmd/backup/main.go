// backup exporta o importa el respaldo completo del almacén local sin levantar la API.
//
// Uso:
//
//	go run ./cmd/backup -export respaldo.json
//	go run ./cmd/backup -import respaldo.json [-charset latin1]
//
// Con -export "-" el respaldo se escribe en la salida estándar. El almacén se elige con
// las mismas variables de entorno que la API (STORE_DRIVER, STORE_PATH, SQLITE_DSN).
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/tiendita/internal/application/backup"
	"github.com/jhoicas/tiendita/internal/application/ledger"
	"github.com/jhoicas/tiendita/internal/domain/repository"
	"github.com/jhoicas/tiendita/internal/infrastructure/localstore"
	"github.com/jhoicas/tiendita/pkg/config"
	"github.com/jhoicas/tiendita/pkg/logger"
)

func main() {
	exportPath := flag.String("export", "", "archivo destino del respaldo (- para stdout)")
	importPath := flag.String("import", "", "archivo de respaldo a importar")
	charset := flag.String("charset", "utf8", "codificación del archivo a importar: utf8 | latin1")
	flag.Parse()

	if (*exportPath == "") == (*importPath == "") {
		fmt.Fprintln(os.Stderr, "indique exactamente una de -export o -import")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Output: os.Stderr})

	store, err := localstore.Open(cfg.Store)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacén local")
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	l := ledger.New(ledger.WithLogger(log.Component("ledger")))
	l.Load(ctx, store)

	if *exportPath != "" {
		err = runExport(l, *exportPath)
	} else {
		err = runImport(ctx, l, store, *importPath, *charset)
	}
	if err != nil {
		log.Error().Err(err).Msg("respaldo")
		store.Close()
		os.Exit(1)
	}
}

func runExport(l *ledger.Ledger, path string) error {
	var w io.Writer = os.Stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("crear %s: %w", path, err)
		}
		defer f.Close()
		w = f
	}
	return backup.Encode(w, l.Export())
}

func runImport(ctx context.Context, l *ledger.Ledger, store repository.KeyValueStore, path, charset string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("abrir %s: %w", path, err)
	}
	defer f.Close()

	r, err := decodeCharset(f, charset)
	if err != nil {
		return err
	}
	b, err := backup.Decode(r)
	if err != nil {
		return err
	}
	if err := l.Import(b); err != nil {
		return err
	}
	snap := l.Snapshot()
	if err := store.SetMany(ctx, map[string]any{
		repository.KeyItems: snap.Items,
		repository.KeySales: snap.Sales,
	}); err != nil {
		return fmt.Errorf("guardar respaldo importado: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Importados %d artículos y %d ventas\n", len(snap.Items), len(snap.Sales))
	return nil
}

// decodeCharset convierte a UTF-8 los respaldos guardados en Latin-1 por herramientas antiguas.
func decodeCharset(r io.Reader, charset string) (io.Reader, error) {
	switch strings.ToLower(charset) {
	case "", "utf8", "utf-8":
		return r, nil
	case "latin1", "iso-8859-1", "iso8859-1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	case "windows-1252", "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	}
	return nil, fmt.Errorf("charset no soportado: %q", charset)
}
