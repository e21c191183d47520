// Package rpc is the unary Connect protocol transport shared by the remote
// service clients. Requests are JSON bodies POSTed to
// {baseURL}/{service}/{method}; failures come back as *Error carrying the
// Connect code and a message fit for the user.
//
//	c, err := rpc.New(cfg, rpc.WithObserver(m))
//	var out listItemsResponse
//	err = c.Call(ctx, "item.v1.ItemService", "ListItems", in, &out,
//		rpc.Idempotent(), rpc.BearerToken(token))
//
// Only calls marked Idempotent are retried, with exponential backoff, on
// unavailable and transport errors.
package rpc
