package usecase_test

import (
	"bytes"
	"context"
	"io"
	"sort"

	"github.com/talentohumano/expediente-api/internal/application/dto"
	"github.com/talentohumano/expediente-api/internal/domain/entity"
	"github.com/talentohumano/expediente-api/internal/domain/repository"
)

// Repositorios en memoria para los tests de casos de uso.

type memUserRepo struct {
	users map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*entity.User{}}
}

func (r *memUserRepo) Create(u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) Delete(id string) error {
	delete(r.users, id)
	return nil
}

func (r *memUserRepo) List(limit, offset int) ([]*entity.User, error) {
	all := r.sorted()
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *memUserRepo) ListByRole(role entity.Role) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.sorted() {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *memUserRepo) ListPersonalActivo(plantelID string) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.sorted() {
		if !u.Role.EsPersonal() || !u.Active {
			continue
		}
		if plantelID != "" && (u.PlantelID == nil || *u.PlantelID != plantelID) {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (r *memUserRepo) ListSinPlantel() ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.sorted() {
		if u.Role.EsPersonal() && u.Active && u.PlantelID == nil {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memUserRepo) ExisteConPuesto(nombre string) (bool, error) {
	for _, u := range r.users {
		if u.Puesto == nombre {
			return true, nil
		}
	}
	return false, nil
}

func (r *memUserRepo) sorted() []*entity.User {
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

type memPlantelRepo struct {
	planteles    map[string]*entity.Plantel
	asignaciones []*entity.PlantelAdmin
	userRepo     *memUserRepo
}

func newMemPlantelRepo(users *memUserRepo) *memPlantelRepo {
	return &memPlantelRepo{planteles: map[string]*entity.Plantel{}, userRepo: users}
}

func (r *memPlantelRepo) Create(p *entity.Plantel) error {
	cp := *p
	r.planteles[p.ID] = &cp
	return nil
}

func (r *memPlantelRepo) GetByID(id string) (*entity.Plantel, error) {
	p, ok := r.planteles[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memPlantelRepo) Update(p *entity.Plantel) error {
	cp := *p
	r.planteles[p.ID] = &cp
	return nil
}

func (r *memPlantelRepo) Delete(id string) error {
	delete(r.planteles, id)
	return nil
}

func (r *memPlantelRepo) List() ([]*entity.Plantel, error) {
	out := make([]*entity.Plantel, 0, len(r.planteles))
	for _, p := range r.planteles {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memPlantelRepo) CountUsuarios(id string) (int, error) {
	n := 0
	for _, u := range r.userRepo.users {
		if u.PlantelID != nil && *u.PlantelID == id {
			n++
		}
	}
	return n, nil
}

func (r *memPlantelRepo) CountAdmins(id string) (int, error) {
	n := 0
	for _, pa := range r.asignaciones {
		if pa.PlantelID == id {
			n++
		}
	}
	return n, nil
}

func (r *memPlantelRepo) AssignAdmin(plantelID, userID string) error {
	for _, pa := range r.asignaciones {
		if pa.PlantelID == plantelID && pa.UserID == userID {
			return nil
		}
	}
	r.asignaciones = append(r.asignaciones, &entity.PlantelAdmin{PlantelID: plantelID, UserID: userID})
	return nil
}

func (r *memPlantelRepo) UnassignAdmin(plantelID, userID string) error {
	out := r.asignaciones[:0]
	for _, pa := range r.asignaciones {
		if pa.PlantelID != plantelID || pa.UserID != userID {
			out = append(out, pa)
		}
	}
	r.asignaciones = out
	return nil
}

func (r *memPlantelRepo) PlantelesDeAdmin(userID string) ([]string, error) {
	var out []string
	for _, pa := range r.asignaciones {
		if pa.UserID == userID {
			out = append(out, pa.PlantelID)
		}
	}
	return out, nil
}

func (r *memPlantelRepo) Asignaciones() ([]*entity.PlantelAdmin, error) {
	return append([]*entity.PlantelAdmin(nil), r.asignaciones...), nil
}

type memChecklistRepo struct {
	items map[string]*entity.ChecklistItem // userID + "|" + tipo
}

func newMemChecklistRepo() *memChecklistRepo {
	return &memChecklistRepo{items: map[string]*entity.ChecklistItem{}}
}

func (r *memChecklistRepo) Upsert(item *entity.ChecklistItem) error {
	cp := *item
	r.items[item.UserID+"|"+item.Type] = &cp
	return nil
}

func (r *memChecklistRepo) GetByUserAndType(userID, tipo string) (*entity.ChecklistItem, error) {
	it, ok := r.items[userID+"|"+tipo]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *memChecklistRepo) ListByUser(userID string) ([]*entity.ChecklistItem, error) {
	var out []*entity.ChecklistItem
	for _, it := range r.items {
		if it.UserID == userID {
			cp := *it
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out, nil
}

func (r *memChecklistRepo) DeleteByUserAndType(userID, tipo string) error {
	delete(r.items, userID+"|"+tipo)
	return nil
}

func (r *memChecklistRepo) DeleteByUser(userID string) error {
	for k, it := range r.items {
		if it.UserID == userID {
			delete(r.items, k)
		}
	}
	return nil
}

type memDocRepo struct {
	docs map[string]*entity.Document
}

func newMemDocRepo() *memDocRepo {
	return &memDocRepo{docs: map[string]*entity.Document{}}
}

func (r *memDocRepo) Create(d *entity.Document) error {
	cp := *d
	r.docs[d.ID] = &cp
	return nil
}

func (r *memDocRepo) GetByID(id string) (*entity.Document, error) {
	d, ok := r.docs[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *memDocRepo) GetByUserAndType(userID, tipo string) (*entity.Document, error) {
	for _, d := range r.docs {
		if d.UserID == userID && d.Type == tipo {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memDocRepo) ListByUser(userID string) ([]*entity.Document, error) {
	var out []*entity.Document
	for _, d := range r.docs {
		if d.UserID == userID {
			cp := *d
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out, nil
}

func (r *memDocRepo) Update(d *entity.Document) error {
	cp := *d
	r.docs[d.ID] = &cp
	return nil
}

func (r *memDocRepo) Delete(id string) error {
	delete(r.docs, id)
	return nil
}

func (r *memDocRepo) DeleteByUser(userID string) error {
	for k, d := range r.docs {
		if d.UserID == userID {
			delete(r.docs, k)
		}
	}
	return nil
}

type memSigRepo struct {
	sigs map[string]*entity.Signature
}

func newMemSigRepo() *memSigRepo {
	return &memSigRepo{sigs: map[string]*entity.Signature{}}
}

func (r *memSigRepo) Create(s *entity.Signature) error {
	cp := *s
	r.sigs[s.ID] = &cp
	return nil
}

func (r *memSigRepo) GetByExternalID(externalID string) (*entity.Signature, error) {
	for _, s := range r.sigs {
		if s.ExternalID == externalID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memSigRepo) GetByUserAndType(userID, tipo string) (*entity.Signature, error) {
	for _, s := range r.sigs {
		if s.UserID == userID && s.Type == tipo {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memSigRepo) ListByUser(userID string) ([]*entity.Signature, error) {
	var out []*entity.Signature
	for _, s := range r.sigs {
		if s.UserID == userID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memSigRepo) Update(s *entity.Signature) error {
	cp := *s
	r.sigs[s.ID] = &cp
	return nil
}

func (r *memSigRepo) DeleteByUser(userID string) error {
	for k, s := range r.sigs {
		if s.UserID == userID {
			delete(r.sigs, k)
		}
	}
	return nil
}

type memPuestoRepo struct {
	puestos map[string]*entity.Puesto
}

func newMemPuestoRepo() *memPuestoRepo {
	return &memPuestoRepo{puestos: map[string]*entity.Puesto{}}
}

func (r *memPuestoRepo) Create(p *entity.Puesto) error {
	cp := *p
	r.puestos[p.ID] = &cp
	return nil
}

func (r *memPuestoRepo) GetByID(id string) (*entity.Puesto, error) {
	p, ok := r.puestos[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memPuestoRepo) GetByKey(key string) (*entity.Puesto, error) {
	for _, p := range r.puestos {
		if p.NameKey == key {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memPuestoRepo) Update(p *entity.Puesto) error {
	cp := *p
	r.puestos[p.ID] = &cp
	return nil
}

func (r *memPuestoRepo) Delete(id string) error {
	delete(r.puestos, id)
	return nil
}

func (r *memPuestoRepo) List(soloActivos bool) ([]*entity.Puesto, error) {
	var out []*entity.Puesto
	for _, p := range r.puestos {
		if soloActivos && !p.Active {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memPuestoRepo) DeactivateAll() error {
	for _, p := range r.puestos {
		p.Active = false
	}
	return nil
}

type memTokenRepo struct {
	tokens map[string]*entity.PasswordResetToken
}

func newMemTokenRepo() *memTokenRepo {
	return &memTokenRepo{tokens: map[string]*entity.PasswordResetToken{}}
}

func (r *memTokenRepo) Create(t *entity.PasswordResetToken) error {
	cp := *t
	r.tokens[t.ID] = &cp
	return nil
}

func (r *memTokenRepo) GetByToken(token string) (*entity.PasswordResetToken, error) {
	for _, t := range r.tokens {
		if t.Token == token {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memTokenRepo) DeleteByUser(userID string) error {
	for k, t := range r.tokens {
		if t.UserID == userID {
			delete(r.tokens, k)
		}
	}
	return nil
}

func (r *memTokenRepo) MarkUsed(id string) error {
	if t, ok := r.tokens[id]; ok {
		t.Used = true
	}
	return nil
}

// memFiles almacenamiento de archivos en memoria.
type memFiles struct {
	data     map[string][]byte
	borrados []string
}

func newMemFiles() *memFiles {
	return &memFiles{data: map[string][]byte{}}
}

func (f *memFiles) Save(_ context.Context, key string, r io.Reader, _ string) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.data[key] = b
	return nil
}

func (f *memFiles) Open(_ context.Context, key string) (io.ReadCloser, error) {
	b, ok := f.data[key]
	if !ok {
		return nil, io.ErrUnexpectedEOF
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (f *memFiles) Delete(_ context.Context, key string) error {
	delete(f.data, key)
	f.borrados = append(f.borrados, key)
	return nil
}

// fakeTx ejecuta los callbacks directamente sobre los repos en memoria.
type fakeTx struct {
	users     *memUserRepo
	checklist *memChecklistRepo
	docs      *memDocRepo
	sigs      *memSigRepo
	tokens    *memTokenRepo
	planteles *memPlantelRepo
}

func (t *fakeTx) RunReset(_ context.Context, fn func(repository.UserRepository, repository.ResetTokenRepository) error) error {
	return fn(t.users, t.tokens)
}

func (t *fakeTx) RunBorradoUsuario(_ context.Context, fn func(
	repository.UserRepository,
	repository.ChecklistRepository,
	repository.DocumentRepository,
	repository.SignatureRepository,
	repository.ResetTokenRepository,
	repository.PlantelRepository,
) error) error {
	return fn(t.users, t.checklist, t.docs, t.sigs, t.tokens, t.planteles)
}

// fakePsico devuelve resultados fijos.
type fakePsico struct {
	resultados []dto.ResultadoPsicometrico
}

func (p *fakePsico) ResultadosPorCURP(_ context.Context, _ string) ([]dto.ResultadoPsicometrico, error) {
	return p.resultados, nil
}
