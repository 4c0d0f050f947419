// Package registry implements an in-memory configuration registry organised
// by named environments.
//
// Every environment is a tree of settings addressed with dotted keys
// ("db.host"). Environments can inherit from each other with [Store.Extend]:
// parents listed later override parents listed earlier, and the
// environment's own settings override all of them.
//
// Usage:
//
//	store := registry.NewStore()
//	store.Extend("Development", []string{"Staging"})
//	store.Set("Development.db.host", registry.String("localhost"))
//	store.Load("Development")
//	v, ok := store.Read("db.host") // "localhost", true
//
// None of the operations report errors. Loading an unknown environment or
// reading an unknown key degrades to a no-op or to ok == false.
//
// A [Store] is not safe for concurrent use; wrap it in [Guarded] when several
// goroutines share it.
package registry
