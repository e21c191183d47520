package web

import (
	"net/http"

	"github.com/dmitrymomot/itemdesk/app/web/ui"
	"github.com/dmitrymomot/itemdesk/core/handler"
	"github.com/dmitrymomot/itemdesk/core/response"
	"github.com/dmitrymomot/itemdesk/integration/itemservice"
	"github.com/dmitrymomot/itemdesk/integration/rpc"
)

const itemsPath = "/items"

func (a *App) listItems(ctx *Context) handler.Response {
	var q itemsQuery
	if err := ctx.BindQuery(&q); err != nil {
		return response.Error(response.ErrBadRequest.WithError(err))
	}
	return a.renderItems(ctx, q, ui.FormState{}, http.StatusOK)
}

// renderItems loads the list and renders it with the create form. A failed
// load shows a toast over an empty list.
func (a *App) renderItems(ctx *Context, query itemsQuery, create ui.FormState, status int) handler.Response {
	p := a.page(ctx, "Items")
	data := ui.ItemsData{Query: query.Q, Status: query.Status, Create: create}

	items, total, err := a.items.List(ctx, query.filters())
	if err != nil {
		p.Toast = &ui.ToastMessage{Kind: ui.ToastError, Message: a.remoteFailed(ctx, "list_items", err)}
	} else {
		data.Items, data.Total = items, total
	}
	return response.TemplWithStatus(ui.ItemsPage(p, data), status)
}

func (a *App) createItem(ctx *Context) handler.Response {
	var form itemForm
	if err := ctx.Bind(&form); err != nil {
		fields, err := formErrors(err)
		if err != nil {
			return response.Error(err)
		}
		state := ui.FormState{Values: form.values(), Errors: fields}
		return a.renderItems(ctx, itemsQuery{}, state, http.StatusUnprocessableEntity)
	}

	if _, err := a.items.Create(ctx, form.Name, form.Description); err != nil {
		a.flash(ctx, ui.ToastError, a.remoteFailed(ctx, "create_item", err))
		return response.RedirectSeeOther(itemsPath)
	}
	a.flash(ctx, ui.ToastSuccess, "Item created.")
	return response.RedirectSeeOther(itemsPath)
}

// loadItem fetches the item of the {id} route parameter. A missing item is a
// 404; other failures go back to the list with a toast.
func (a *App) loadItem(ctx *Context, action string) (itemservice.Item, handler.Response) {
	item, err := a.items.Get(ctx, ctx.Param("id"))
	if err == nil {
		return item, nil
	}
	if rpc.CodeOf(err) == rpc.CodeNotFound {
		return itemservice.Item{}, response.Error(response.ErrNotFound.WithMessage("Item not found."))
	}
	a.flash(ctx, ui.ToastError, a.remoteFailed(ctx, action, err))
	return itemservice.Item{}, response.RedirectSeeOther(itemsPath)
}

func (a *App) editItem(ctx *Context) handler.Response {
	item, resp := a.loadItem(ctx, "get_item")
	if resp != nil {
		return resp
	}
	return response.Templ(ui.EditItemPage(a.page(ctx, "Edit item"), item, ui.FormState{}))
}

func (a *App) updateItem(ctx *Context) handler.Response {
	var form itemForm
	if err := ctx.Bind(&form); err != nil {
		fields, err := formErrors(err)
		if err != nil {
			return response.Error(err)
		}
		item := itemservice.Item{ID: ctx.Param("id")}
		state := ui.FormState{Values: form.values(), Errors: fields}
		return response.TemplWithStatus(ui.EditItemPage(a.page(ctx, "Edit item"), item, state), http.StatusUnprocessableEntity)
	}

	if _, err := a.items.Update(ctx, form.ID, form.Name, form.Description); err != nil {
		a.flash(ctx, ui.ToastError, a.remoteFailed(ctx, "update_item", err))
		return response.RedirectSeeOther(itemsPath)
	}
	a.flash(ctx, ui.ToastSuccess, "Item updated.")
	return response.RedirectSeeOther(itemsPath)
}

func (a *App) setItemStatus(ctx *Context) handler.Response {
	var form statusForm
	if err := ctx.Bind(&form); err != nil {
		if _, err := formErrors(err); err != nil {
			return response.Error(err)
		}
		a.flash(ctx, ui.ToastError, "Choose a valid status.")
		return response.RedirectSeeOther(itemsPath)
	}

	s, _ := itemservice.ParseStatus(form.Status)
	if _, err := a.items.SetStatus(ctx, form.ID, s); err != nil {
		a.flash(ctx, ui.ToastError, a.remoteFailed(ctx, "set_item_status", err))
		return response.RedirectSeeOther(itemsPath)
	}
	a.flash(ctx, ui.ToastSuccess, "Item marked "+s.Slug()+".")
	return response.RedirectSeeOther(itemsPath)
}

func (a *App) confirmDeleteItem(ctx *Context) handler.Response {
	item, resp := a.loadItem(ctx, "get_item")
	if resp != nil {
		return resp
	}
	return response.Templ(ui.DeleteItemPage(a.page(ctx, "Delete item"), item))
}

func (a *App) deleteItem(ctx *Context) handler.Response {
	if err := a.items.Delete(ctx, ctx.Param("id")); err != nil {
		a.flash(ctx, ui.ToastError, a.remoteFailed(ctx, "delete_item", err))
		return response.RedirectSeeOther(itemsPath)
	}
	a.flash(ctx, ui.ToastSuccess, "Item deleted.")
	return response.RedirectSeeOther(itemsPath)
}
