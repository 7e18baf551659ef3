package browser

import (
	_ "embed"
)

// rolesJS evaluates to a function (role, name) returning the elements under
// `this` (or document) whose ARIA role is role and whose accessible name
// contains name, ignoring case.
//
//go:embed roles.js
var rolesJS string

// hasOptionJS reports whether a select element has an option with the given value or label
const hasOptionJS = `(el, v) => Array.from(el.options).some(o => o.value === v || o.label === v)`

// navigationStatusJS returns the HTTP status of the current document, or 0 when the browser does not expose it
const navigationStatusJS = `(() => {
	const nav = performance.getEntriesByType('navigation')[0];
	return nav && nav.responseStatus ? nav.responseStatus : 0;
})()`
