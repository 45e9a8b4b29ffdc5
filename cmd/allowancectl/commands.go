package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"
	"github.com/jhoicas/Botiquin-api/internal/application/dto"
	"github.com/jhoicas/Botiquin-api/internal/application/inventory"
)

// ── export ───────────────────────────────────────────────────────────────────

type exportCmd struct {
	id  string
	out string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "exporta una dotación como paquete .tar.gz" }
func (*exportCmd) Usage() string {
	return `allowancectl export -id <uuid> [-o fichero.tar.gz]

  Escribe la dotación y sus filas de requerimiento. Sin -o escribe en stdout.
`
}

func (p *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.id, "id", "", "ID de la dotación a exportar.")
	f.StringVar(&p.out, "o", "", "Fichero de salida (por defecto stdout).")
}

func (p *exportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.id == "" {
		fmt.Fprintln(os.Stderr, "falta -id")
		return subcommands.ExitUsageError
	}
	e, err := openEnv(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer e.Close()

	var w io.Writer = os.Stdout
	if p.out != "" {
		f, err := os.Create(p.out)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		defer f.Close()
		w = f
	}
	a, err := e.allowances().Export(ctx, p.id, w)
	if err != nil {
		fmt.Fprintf(os.Stderr, "exportar %s: %v\n", p.id, err)
		if p.out != "" {
			_ = os.Remove(p.out)
		}
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "exportada %q (%s, versión %d)\n", a.Name, a.Author, a.Version)
	return subcommands.ExitSuccess
}

// ── import ───────────────────────────────────────────────────────────────────

type importCmd struct{}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "instala o actualiza una dotación desde un paquete" }
func (*importCmd) Usage() string {
	return `allowancectl import <fichero.tar.gz>

  Un paquete con versión más antigua que la instalada se rechaza.
  Los elementos que falten en el catálogo se crean por nombre.
`
}

func (*importCmd) SetFlags(*flag.FlagSet) {}

func (*importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: allowancectl import <fichero.tar.gz>")
		return subcommands.ExitUsageError
	}
	file, err := os.Open(f.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer file.Close()

	e, err := openEnv(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer e.Close()

	res, err := e.allowances().Import(ctx, file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "importar %s: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}
	action := "actualizada"
	if res.Created {
		action = "instalada"
	}
	fmt.Printf("%s %q versión %d: %d filas, %d moléculas y %d materiales nuevos\n",
		action, res.Allowance.Name, res.Allowance.Version, res.Rows, res.MoleculesCreated, res.EquipmentsCreated)
	return subcommands.ExitSuccess
}

// ── list ─────────────────────────────────────────────────────────────────────

type listCmd struct{}

func (*listCmd) Name() string           { return "list" }
func (*listCmd) Synopsis() string       { return "lista las dotaciones instaladas" }
func (*listCmd) Usage() string          { return "allowancectl list\n" }
func (*listCmd) SetFlags(*flag.FlagSet) {}

func (*listCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	e, err := openEnv(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer e.Close()

	list, err := e.allowances().List(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNOMBRE\tAUTOR\tVERSIÓN\tADICIONAL\tACTIVA")
	for _, a := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%t\t%t\n", a.ID, a.Name, a.Author, a.Version, a.Additional, a.Active)
	}
	_ = tw.Flush()
	return subcommands.ExitSuccess
}

// ── status ───────────────────────────────────────────────────────────────────

type statusCmd struct {
	domain string
}

func (*statusCmd) Name() string     { return "status" }
func (*statusCmd) Synopsis() string { return "muestra los faltantes frente a las dotaciones activas" }
func (*statusCmd) Usage() string {
	return `allowancectl status [-domain <dominio>]

  Imprime una línea por elemento con faltante. Sin -domain recorre todos los dominios.
`
}

func (p *statusCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.domain, "domain", "", "molecule, equipment, first_aid_kit, rescue_bag, telemedical o laboratory.")
}

func (p *statusCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	e, err := openEnv(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer e.Close()

	status := e.status()
	var shortages []dto.ShortageDTO
	if p.domain == "" {
		shortages, err = inventory.NewShortageUseCase(status).ListShortages(ctx, dto.StatusFilter{})
	} else {
		shortages, err = inventory.NewShortageUseCase(domainOnly{status, p.domain}).ListShortages(ctx, dto.StatusFilter{})
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printShortages(os.Stdout, shortages)
	return subcommands.ExitSuccess
}

// domainOnly limita el estado completo a un dominio.
type domainOnly struct {
	status *inventory.StatusUseCase
	domain string
}

func (d domainOnly) FullStatus(ctx context.Context, filter dto.StatusFilter) (*dto.FullStatusDTO, error) {
	st, err := d.status.DomainStatus(ctx, d.domain, filter)
	if err != nil {
		return nil, err
	}
	return &dto.FullStatusDTO{Domains: []dto.DomainStatusDTO{*st}, Summary: st.Summary}, nil
}

func printShortages(w io.Writer, list []dto.ShortageDTO) {
	if len(list) == 0 {
		fmt.Fprintln(w, "sin faltantes")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tDOMINIO\tCONTENEDOR\tELEMENTO\tREQUERIDO\tACTUAL\tFALTA")
	for _, s := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			s.Priority, s.Domain, s.ContainerName, s.Name, s.Required.String(), s.Current.String(), s.Missing.String())
	}
	_ = tw.Flush()
}
