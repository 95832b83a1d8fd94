package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/dungvu242k3/XoXo-sub001/internal/model"
)

// Flat-record mutation families. Each one goes through mutate: optimistic
// local apply, remote confirm, restore on failure. Adds insert a placeholder
// record first and swap in the remote-confirmed one (with its assigned id)
// once the insert resolves.

func (s *Store) AddCustomer(ctx context.Context, c model.Customer) (model.Customer, error) {
	placeholder := "local-" + uuid.NewString()
	c.ID = placeholder
	var confirmed model.Customer
	err := s.mutate(ctx,
		func() func() {
			s.cols.Customers = append(s.cols.Customers, c)
			return func() { s.cols.Customers = removeCustomer(s.cols.Customers, placeholder) }
		},
		func(ctx context.Context) error {
			added, err := s.remote.AddCustomer(ctx, model.Customer{
				Name: c.Name, Phone: c.Phone, Email: c.Email, Address: c.Address,
				Tier: c.Tier, TotalSpent: c.TotalSpent, Notes: c.Notes,
			})
			if err != nil {
				return err
			}
			confirmed = added
			s.mu.Lock()
			for i := range s.cols.Customers {
				if s.cols.Customers[i].ID == placeholder {
					s.cols.Customers[i] = added
				}
			}
			s.mu.Unlock()
			return nil
		},
	)
	if err != nil {
		return model.Customer{}, err
	}
	s.persistSoon()
	return confirmed, nil
}

func (s *Store) UpdateCustomer(ctx context.Context, c model.Customer) error {
	return s.mutate(ctx,
		func() func() {
			prev, idx := findCustomer(s.cols.Customers, c.ID)
			if idx < 0 {
				return func() {}
			}
			s.cols.Customers[idx] = c
			return func() {
				if _, i := findCustomer(s.cols.Customers, c.ID); i >= 0 {
					s.cols.Customers[i] = prev
				}
			}
		},
		func(ctx context.Context) error { return s.remote.UpdateCustomer(ctx, c) },
	)
}

func (s *Store) DeleteCustomer(ctx context.Context, id string) error {
	return s.mutate(ctx,
		func() func() {
			prev, idx := findCustomer(s.cols.Customers, id)
			if idx < 0 {
				return func() {}
			}
			s.cols.Customers = removeCustomer(s.cols.Customers, id)
			return func() { s.cols.Customers = insertCustomerAt(s.cols.Customers, prev, idx) }
		},
		func(ctx context.Context) error { return s.remote.DeleteCustomer(ctx, id) },
	)
}

func (s *Store) AddInventoryItem(ctx context.Context, it model.InventoryItem) (model.InventoryItem, error) {
	placeholder := "local-" + uuid.NewString()
	it.ID = placeholder
	var confirmed model.InventoryItem
	err := s.mutate(ctx,
		func() func() {
			s.cols.Inventory = append(s.cols.Inventory, it)
			return func() { s.cols.Inventory = removeInventory(s.cols.Inventory, placeholder) }
		},
		func(ctx context.Context) error {
			record := it
			record.ID = ""
			added, err := s.remote.AddInventoryItem(ctx, record)
			if err != nil {
				return err
			}
			confirmed = added
			s.mu.Lock()
			for i := range s.cols.Inventory {
				if s.cols.Inventory[i].ID == placeholder {
					s.cols.Inventory[i] = added
				}
			}
			s.mu.Unlock()
			return nil
		},
	)
	if err != nil {
		return model.InventoryItem{}, err
	}
	s.persistSoon()
	return confirmed, nil
}

func (s *Store) UpdateInventoryItem(ctx context.Context, it model.InventoryItem) error {
	return s.mutate(ctx,
		func() func() {
			prev, idx := findInventory(s.cols.Inventory, it.ID)
			if idx < 0 {
				return func() {}
			}
			s.cols.Inventory[idx] = it
			return func() {
				if _, i := findInventory(s.cols.Inventory, it.ID); i >= 0 {
					s.cols.Inventory[i] = prev
				}
			}
		},
		func(ctx context.Context) error { return s.remote.UpdateInventoryItem(ctx, it) },
	)
}

func (s *Store) DeleteInventoryItem(ctx context.Context, id string) error {
	return s.mutate(ctx,
		func() func() {
			prev, idx := findInventory(s.cols.Inventory, id)
			if idx < 0 {
				return func() {}
			}
			s.cols.Inventory = removeInventory(s.cols.Inventory, id)
			return func() { s.cols.Inventory = insertInventoryAt(s.cols.Inventory, prev, idx) }
		},
		func(ctx context.Context) error { return s.remote.DeleteInventoryItem(ctx, id) },
	)
}

func (s *Store) AddMember(ctx context.Context, m model.Member) (model.Member, error) {
	placeholder := "local-" + uuid.NewString()
	m.ID = placeholder
	var confirmed model.Member
	err := s.mutate(ctx,
		func() func() {
			s.cols.Members = append(s.cols.Members, m)
			return func() { s.cols.Members = removeMember(s.cols.Members, placeholder) }
		},
		func(ctx context.Context) error {
			record := m
			record.ID = ""
			added, err := s.remote.AddMember(ctx, record)
			if err != nil {
				return err
			}
			confirmed = added
			s.mu.Lock()
			for i := range s.cols.Members {
				if s.cols.Members[i].ID == placeholder {
					s.cols.Members[i] = added
				}
			}
			s.mu.Unlock()
			return nil
		},
	)
	if err != nil {
		return model.Member{}, err
	}
	s.persistSoon()
	return confirmed, nil
}

func (s *Store) UpdateMember(ctx context.Context, m model.Member) error {
	return s.mutate(ctx,
		func() func() {
			prev, idx := findMember(s.cols.Members, m.ID)
			if idx < 0 {
				return func() {}
			}
			s.cols.Members[idx] = m
			return func() {
				if _, i := findMember(s.cols.Members, m.ID); i >= 0 {
					s.cols.Members[i] = prev
				}
			}
		},
		func(ctx context.Context) error { return s.remote.UpdateMember(ctx, m) },
	)
}

func (s *Store) DeleteMember(ctx context.Context, id string) error {
	return s.mutate(ctx,
		func() func() {
			prev, idx := findMember(s.cols.Members, id)
			if idx < 0 {
				return func() {}
			}
			s.cols.Members = removeMember(s.cols.Members, id)
			return func() { s.cols.Members = insertMemberAt(s.cols.Members, prev, idx) }
		},
		func(ctx context.Context) error { return s.remote.DeleteMember(ctx, id) },
	)
}

func (s *Store) AddProduct(ctx context.Context, p model.Product) (model.Product, error) {
	placeholder := "local-" + uuid.NewString()
	p.ID = placeholder
	var confirmed model.Product
	err := s.mutate(ctx,
		func() func() {
			s.cols.Products = append(s.cols.Products, p)
			return func() { s.cols.Products = removeProduct(s.cols.Products, placeholder) }
		},
		func(ctx context.Context) error {
			record := p
			record.ID = ""
			added, err := s.remote.AddProduct(ctx, record)
			if err != nil {
				return err
			}
			confirmed = added
			s.mu.Lock()
			for i := range s.cols.Products {
				if s.cols.Products[i].ID == placeholder {
					s.cols.Products[i] = added
				}
			}
			s.mu.Unlock()
			return nil
		},
	)
	if err != nil {
		return model.Product{}, err
	}
	s.persistSoon()
	return confirmed, nil
}

func (s *Store) UpdateProduct(ctx context.Context, p model.Product) error {
	return s.mutate(ctx,
		func() func() {
			prev, idx := findProduct(s.cols.Products, p.ID)
			if idx < 0 {
				return func() {}
			}
			s.cols.Products[idx] = p
			return func() {
				if _, i := findProduct(s.cols.Products, p.ID); i >= 0 {
					s.cols.Products[i] = prev
				}
			}
		},
		func(ctx context.Context) error { return s.remote.UpdateProduct(ctx, p) },
	)
}

func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	return s.mutate(ctx,
		func() func() {
			prev, idx := findProduct(s.cols.Products, id)
			if idx < 0 {
				return func() {}
			}
			s.cols.Products = removeProduct(s.cols.Products, id)
			return func() { s.cols.Products = insertProductAt(s.cols.Products, prev, idx) }
		},
		func(ctx context.Context) error { return s.remote.DeleteProduct(ctx, id) },
	)
}

func findByID[T any](list []T, id string, idOf func(T) string) (T, int) {
	for i, v := range list {
		if idOf(v) == id {
			return v, i
		}
	}
	var zero T
	return zero, -1
}

func removeByID[T any](list []T, id string, idOf func(T) string) []T {
	out := list[:0]
	for _, v := range list {
		if idOf(v) != id {
			out = append(out, v)
		}
	}
	return out
}

func insertAt[T any](list []T, v T, idx int) []T {
	if idx < 0 || idx > len(list) {
		idx = len(list)
	}
	var zero T
	list = append(list, zero)
	copy(list[idx+1:], list[idx:])
	list[idx] = v
	return list
}

func customerID(c model.Customer) string { return c.ID }

func inventoryID(it model.InventoryItem) string { return it.ID }

func memberID(m model.Member) string { return m.ID }

func productID(p model.Product) string { return p.ID }

func findCustomer(list []model.Customer, id string) (model.Customer, int) {
	return findByID(list, id, customerID)
}
func removeCustomer(list []model.Customer, id string) []model.Customer {
	return removeByID(list, id, customerID)
}
func insertCustomerAt(list []model.Customer, c model.Customer, idx int) []model.Customer {
	return insertAt(list, c, idx)
}

func findInventory(list []model.InventoryItem, id string) (model.InventoryItem, int) {
	return findByID(list, id, inventoryID)
}
func removeInventory(list []model.InventoryItem, id string) []model.InventoryItem {
	return removeByID(list, id, inventoryID)
}
func insertInventoryAt(list []model.InventoryItem, it model.InventoryItem, idx int) []model.InventoryItem {
	return insertAt(list, it, idx)
}

func findMember(list []model.Member, id string) (model.Member, int) {
	return findByID(list, id, memberID)
}
func removeMember(list []model.Member, id string) []model.Member {
	return removeByID(list, id, memberID)
}
func insertMemberAt(list []model.Member, m model.Member, idx int) []model.Member {
	return insertAt(list, m, idx)
}

func findProduct(list []model.Product, id string) (model.Product, int) {
	return findByID(list, id, productID)
}
func removeProduct(list []model.Product, id string) []model.Product {
	return removeByID(list, id, productID)
}
func insertProductAt(list []model.Product, p model.Product, idx int) []model.Product {
	return insertAt(list, p, idx)
}
