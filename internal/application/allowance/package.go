package allowance

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Botiquin-api/internal/application/dto"
	"github.com/jhoicas/Botiquin-api/internal/domain"
	"github.com/jhoicas/Botiquin-api/internal/domain/entity"
	"github.com/jhoicas/Botiquin-api/internal/domain/repository"
)

// Export escribe la dotación y sus filas como paquete en w.
// Las filas cuyo elemento ya no está en el catálogo se omiten.
func (uc *UseCase) Export(ctx context.Context, id string, w io.Writer) (*dto.AllowanceResponse, error) {
	a, err := uc.allowances.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	rows, err := uc.reqQtys.ListByAllowance(ctx, id)
	if err != nil {
		return nil, err
	}
	mols, err := uc.molecules.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	eqs, err := uc.equipments.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	type ref struct{ name, group string }
	refs := make(map[string]ref, len(mols)+len(eqs))
	for _, m := range mols {
		refs[entity.BaseKindMolecule+"|"+m.ID] = ref{m.Name, m.Group}
	}
	for _, e := range eqs {
		refs[entity.BaseKindEquipment+"|"+e.ID] = ref{e.Name, e.Group}
	}

	pkg := &Package{Manifest: Manifest{
		Name:       a.Name,
		Author:     a.Author,
		Version:    a.Version,
		Date:       a.Date,
		Additional: a.Additional,
	}}
	for _, r := range rows {
		ref, ok := refs[r.BaseKind+"|"+r.BaseID]
		if !ok {
			uc.log.Warn().Str("allowance_id", id).Str("base_id", r.BaseID).Msg("fila sin elemento en catálogo, se omite")
			continue
		}
		pkg.Requirements = append(pkg.Requirements, PackageRow{
			Domain:   r.Domain,
			BaseKind: r.BaseKind,
			Name:     ref.name,
			Group:    ref.group,
			Quantity: r.RequiredQuantity,
		})
	}
	sortPackageRows(pkg.Requirements)

	if err := uc.codec.Encode(w, pkg); err != nil {
		return nil, fmt.Errorf("exportar dotación: %w", err)
	}
	return toAllowanceResponse(a), nil
}

// Import instala un paquete de dotación.
//
// La dotación se identifica por (Name, Author): si ya existe con una versión mayor se
// rechaza con ErrConflict; si no, se actualiza y sus filas se reemplazan por las del paquete.
// Los elementos que no estén en el catálogo se crean por nombre.
func (uc *UseCase) Import(ctx context.Context, r io.Reader) (*dto.ImportResultDTO, error) {
	pkg, err := uc.codec.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if err := validatePackage(pkg); err != nil {
		return nil, err
	}

	now := uc.now()
	result := &dto.ImportResultDTO{Rows: len(pkg.Requirements)}
	var installed *entity.Allowance

	err = uc.txRunner.RunAllowance(ctx, func(
		allowanceRepo repository.AllowanceRepository,
		reqQtyRepo repository.ReqQtyRepository,
		moleculeRepo repository.MoleculeRepository,
		equipmentRepo repository.EquipmentRepository,
	) error {
		m := pkg.Manifest
		a, err := allowanceRepo.GetByNameAndAuthor(ctx, m.Name, m.Author)
		if err != nil {
			return err
		}
		if a != nil && m.Version < a.Version {
			return fmt.Errorf("%w: versión %d instalada, paquete %d", domain.ErrConflict, a.Version, m.Version)
		}
		if a == nil {
			a = &entity.Allowance{
				ID:        uuid.New().String(),
				Name:      m.Name,
				Author:    m.Author,
				Active:    true,
				CreatedAt: now,
			}
			result.Created = true
		}
		a.Version = m.Version
		a.Date = m.Date
		a.Additional = m.Additional
		a.UpdatedAt = now
		if result.Created {
			err = allowanceRepo.Create(ctx, a)
		} else {
			err = allowanceRepo.Update(ctx, a)
		}
		if err != nil {
			return err
		}

		res := resolver{molecules: moleculeRepo, equipments: equipmentRepo, now: now, ids: map[string]string{}}
		rows := make([]*entity.ReqQty, 0, len(pkg.Requirements))
		for _, pr := range pkg.Requirements {
			baseID, err := res.resolve(ctx, pr)
			if err != nil {
				return err
			}
			rows = append(rows, &entity.ReqQty{
				ID:               uuid.New().String(),
				Domain:           pr.Domain,
				AllowanceID:      a.ID,
				BaseKind:         pr.BaseKind,
				BaseID:           baseID,
				RequiredQuantity: pr.Quantity,
			})
		}
		result.MoleculesCreated = res.molCreated
		result.EquipmentsCreated = res.eqCreated
		installed = a
		return reqQtyRepo.ReplaceForAllowance(ctx, a.ID, rows)
	})
	if err != nil {
		return nil, err
	}

	uc.invalidate(ctx)
	result.Allowance = *toAllowanceResponse(installed)
	uc.log.Info().
		Str("allowance_id", installed.ID).
		Str("name", installed.Name).
		Int("version", installed.Version).
		Int("rows", result.Rows).
		Bool("created", result.Created).
		Msg("paquete de dotación importado")
	return result, nil
}

func validatePackage(p *Package) error {
	if p == nil {
		return domain.ErrInvalidInput
	}
	p.Manifest.Name = strings.TrimSpace(p.Manifest.Name)
	p.Manifest.Author = strings.TrimSpace(p.Manifest.Author)
	if p.Manifest.Name == "" || p.Manifest.Author == "" || p.Manifest.Version < 0 {
		return fmt.Errorf("%w: manifiesto incompleto", domain.ErrInvalidInput)
	}
	seen := make(map[string]bool, len(p.Requirements))
	for i := range p.Requirements {
		r := &p.Requirements[i]
		r.Name = strings.TrimSpace(r.Name)
		if r.Name == "" || !entity.ValidDomain(r.Domain) || !entity.AcceptsBaseKind(r.Domain, r.BaseKind) || r.Quantity.IsNegative() {
			return fmt.Errorf("%w: fila %d inválida", domain.ErrInvalidInput, i+1)
		}
		key := r.Domain + "|" + r.BaseKind + "|" + strings.ToLower(r.Name)
		if seen[key] {
			return fmt.Errorf("%w: fila %d duplicada", domain.ErrInvalidInput, i+1)
		}
		seen[key] = true
	}
	return nil
}

// resolver traduce nombres de elementos a IDs del catálogo, creando los que falten.
type resolver struct {
	molecules  repository.MoleculeRepository
	equipments repository.EquipmentRepository
	now        time.Time
	ids        map[string]string
	molCreated int
	eqCreated  int
}

func (r *resolver) resolve(ctx context.Context, pr PackageRow) (string, error) {
	key := pr.BaseKind + "|" + strings.ToLower(pr.Name)
	if id, ok := r.ids[key]; ok {
		return id, nil
	}
	var id string
	switch pr.BaseKind {
	case entity.BaseKindMolecule:
		m, err := r.molecules.GetByName(ctx, pr.Name)
		if err != nil {
			return "", err
		}
		if m == nil {
			m = &entity.Molecule{ID: uuid.New().String(), Name: pr.Name, Group: pr.Group, CreatedAt: r.now, UpdatedAt: r.now}
			if err := r.molecules.Create(ctx, m); err != nil {
				return "", err
			}
			r.molCreated++
		}
		id = m.ID
	case entity.BaseKindEquipment:
		e, err := r.equipments.GetByName(ctx, pr.Name)
		if err != nil {
			return "", err
		}
		if e == nil {
			e = &entity.Equipment{ID: uuid.New().String(), Name: pr.Name, Group: pr.Group, CreatedAt: r.now, UpdatedAt: r.now}
			if err := r.equipments.Create(ctx, e); err != nil {
				return "", err
			}
			r.eqCreated++
		}
		id = e.ID
	default:
		return "", domain.ErrInvalidInput
	}
	r.ids[key] = id
	return id, nil
}

func sortPackageRows(rows []PackageRow) {
	order := make(map[string]int, len(entity.Domains))
	for i, d := range entity.Domains {
		order[d] = i
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Domain != b.Domain {
			return order[a.Domain] < order[b.Domain]
		}
		if a.BaseKind != b.BaseKind {
			return a.BaseKind < b.BaseKind
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})
}
