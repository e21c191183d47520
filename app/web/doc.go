// Package web is the local itemdesk client: it keeps one persisted session,
// serves server-rendered pages to the user's browser and forwards item and
// auth operations to the remote services.
//
// New wires configuration, logging, metrics, the session store and the RPC
// clients, then builds the router:
//
//	app, err := web.New(ctx)
//	if err != nil {
//		return err
//	}
//	defer app.Close()
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(app.Run(ctx))
//	return g.Wait()
//
// Every page route is guarded before its handler runs: signed-out users are
// sent to /sign-in and signed-in users never see the sign-in or sign-up
// pages. Form posts follow post-redirect-get and carry outcome messages as
// encrypted one-shot toast cookies.
package web
