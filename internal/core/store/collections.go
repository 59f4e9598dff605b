package store

import (
	"context"

	"github.com/gabrielnatan/petinova-2-sub000/internal/core/domain"
)

// Collection setters are pure in-memory replace/append/merge/filter
// operations. Update* applies the mutator to the record matched by ID and is
// a no-op for an unknown ID; nothing here rolls back on a failed network
// call elsewhere.

func (s *Store) SetPets(pets []domain.Pet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Pets = pets
}

func (s *Store) AddPet(p domain.Pet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Pets = append(s.state.Pets, p)
}

func (s *Store) UpdatePet(id string, mutate func(*domain.Pet)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Pets {
		if s.state.Pets[i].ID == id {
			mutate(&s.state.Pets[i])
			return
		}
	}
}

func (s *Store) RemovePet(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Pets = removeByID(s.state.Pets, id, func(p domain.Pet) string { return p.ID })
}

func (s *Store) SetGuardians(guardians []domain.Guardian) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Guardians = guardians
}

func (s *Store) AddGuardian(g domain.Guardian) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Guardians = append(s.state.Guardians, g)
}

func (s *Store) UpdateGuardian(id string, mutate func(*domain.Guardian)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Guardians {
		if s.state.Guardians[i].ID == id {
			mutate(&s.state.Guardians[i])
			return
		}
	}
}

func (s *Store) RemoveGuardian(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Guardians = removeByID(s.state.Guardians, id, func(g domain.Guardian) string { return g.ID })
}

func (s *Store) SetVeterinarians(vets []domain.Veterinarian) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Veterinarians = vets
}

func (s *Store) AddVeterinarian(v domain.Veterinarian) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Veterinarians = append(s.state.Veterinarians, v)
}

func (s *Store) UpdateVeterinarian(id string, mutate func(*domain.Veterinarian)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Veterinarians {
		if s.state.Veterinarians[i].ID == id {
			mutate(&s.state.Veterinarians[i])
			return
		}
	}
}

func (s *Store) RemoveVeterinarian(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Veterinarians = removeByID(s.state.Veterinarians, id, func(v domain.Veterinarian) string { return v.ID })
}

func (s *Store) SetAppointments(appts []domain.Appointment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Appointments = appts
}

func (s *Store) AddAppointment(a domain.Appointment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Appointments = append(s.state.Appointments, a)
}

func (s *Store) UpdateAppointment(id string, mutate func(*domain.Appointment)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Appointments {
		if s.state.Appointments[i].ID == id {
			mutate(&s.state.Appointments[i])
			return
		}
	}
}

func (s *Store) RemoveAppointment(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Appointments = removeByID(s.state.Appointments, id, func(a domain.Appointment) string { return a.ID })
}

func (s *Store) SetConsultations(consultations []domain.Consultation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Consultations = consultations
}

func (s *Store) AddConsultation(c domain.Consultation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Consultations = append(s.state.Consultations, c)
}

func (s *Store) UpdateConsultation(id string, mutate func(*domain.Consultation)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Consultations {
		if s.state.Consultations[i].ID == id {
			mutate(&s.state.Consultations[i])
			return
		}
	}
}

func (s *Store) RemoveConsultation(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Consultations = removeByID(s.state.Consultations, id, func(c domain.Consultation) string { return c.ID })
}

func (s *Store) SetProducts(products []domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Products = products
}

func (s *Store) AddProduct(p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Products = append(s.state.Products, p)
}

func (s *Store) UpdateProduct(id string, mutate func(*domain.Product)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Products {
		if s.state.Products[i].ID == id {
			mutate(&s.state.Products[i])
			return
		}
	}
}

func (s *Store) RemoveProduct(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Products = removeByID(s.state.Products, id, func(p domain.Product) string { return p.ID })
}

// Loaders fetch-and-replace one collection from the upstream, first page
// only. A failed fetch is logged and leaves the prior collection untouched;
// loaders never return an error to the caller.

func (s *Store) LoadPets(ctx context.Context) {
	pets, err := s.catalog.ListPets(ctx, collectionPageSize)
	if err != nil {
		s.log.Warnw("pets load failed", "error", err)
		return
	}
	s.SetPets(pets)
}

func (s *Store) LoadGuardians(ctx context.Context) {
	guardians, err := s.catalog.ListGuardians(ctx, collectionPageSize)
	if err != nil {
		s.log.Warnw("guardians load failed", "error", err)
		return
	}
	s.SetGuardians(guardians)
}

func (s *Store) LoadVeterinarians(ctx context.Context) {
	vets, err := s.catalog.ListVeterinarians(ctx, collectionPageSize)
	if err != nil {
		s.log.Warnw("veterinarians load failed", "error", err)
		return
	}
	s.SetVeterinarians(vets)
}

func (s *Store) LoadAppointments(ctx context.Context) {
	appts, err := s.catalog.ListAppointments(ctx, collectionPageSize)
	if err != nil {
		s.log.Warnw("appointments load failed", "error", err)
		return
	}
	s.SetAppointments(appts)
}

func (s *Store) LoadConsultations(ctx context.Context) {
	consultations, err := s.catalog.ListConsultations(ctx, collectionPageSize)
	if err != nil {
		s.log.Warnw("consultations load failed", "error", err)
		return
	}
	s.SetConsultations(consultations)
}

func (s *Store) LoadProducts(ctx context.Context) {
	products, err := s.catalog.ListProducts(ctx, collectionPageSize)
	if err != nil {
		s.log.Warnw("products load failed", "error", err)
		return
	}
	s.SetProducts(products)
}

func removeByID[T any](list []T, id string, idOf func(T) string) []T {
	out := list[:0]
	for _, item := range list {
		if idOf(item) != id {
			out = append(out, item)
		}
	}
	return out
}
