// Package routing decides which consumer service should receive a request
// based on its host name and path.
//
// The Router is a pre filter with order 0. It runs only when no earlier
// filter has set a forward target or a service id, and it writes at most
// one service id into the request context:
//
//	consumer domain
//	  /consumer-web[/...]              -> consumer-web
//	  anything else                    -> consumer-web-static
//	consumer admin domain
//	  /consumer-web-admin-other[/...]  -> consumer-web-admin-other
//	  /consumer-web-admin[/...]        -> consumer-web-admin
//	  anything else                    -> consumer-web-admin-static
//
// Hosts are compared ignoring case. A blank or unknown host produces no
// decision, leaving the request to later filters.
package routing
