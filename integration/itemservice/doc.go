// Package itemservice is the client of the remote item service
// (item.v1.ItemService). Every call takes the access token of the signed-in
// user from auth.FromContext, so it must run inside the AuthProvider scope.
//
//	items := itemservice.New(rpcClient)
//	list, total, err := items.List(ctx, itemservice.Filters{Name: "lamp"})
//
// List and Get are retried on transient failures; mutations are not.
package itemservice
