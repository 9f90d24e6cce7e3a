package cmd

import (
	"formation/internal/adapters/out/postgres"
	"formation/internal/core/application/usecases/commands"
	"formation/internal/core/application/usecases/queries"
	"formation/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB        *gorm.DB
	uowFactory    postgres.GormUnitOfWorkFactory
	documentStore ports.DocumentStore
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB, documentStore ports.DocumentStore) CompositionRoot {
	return CompositionRoot{
		gormDB:        gormDB,
		uowFactory:    *postgres.NewGormUnitOfWorkFactory(gormDB),
		documentStore: documentStore,
	}
}

func (c *CompositionRoot) CreateUpdateProgressCommandHandler() commands.UpdateProgressCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateProgressCommandHandler(f)
}

func (c *CompositionRoot) CreateUploadDocumentCommandHandler() commands.UploadDocumentCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewUploadDocumentCommandHandler(f, c.documentStore)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeOrderStatusCommandHandler(f)
}

func (c *CompositionRoot) CreateReconcileOrderStatusesCommandHandler() commands.ReconcileOrderStatusesCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReconcileOrderStatusesCommandHandler(f)
}

func (c *CompositionRoot) CreateGetOrderProgressQueryHandler() queries.GetOrderProgressQueryHandler {
	return queries.NewGetOrderProgressQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.gormDB)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
