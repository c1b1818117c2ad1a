// internal/browser/style/useragent.go
package style

// DefaultUserAgentCSS is the built-in stylesheet every document starts from.
// Only type selectors are understood.
const DefaultUserAgentCSS = `
html, body, div, p, h1, h2, h3, h4, h5, h6, ul, ol, li, dl, dt, dd,
address, blockquote, pre, hr, section, article, header, footer, nav,
main, aside, form, table, tr, center, figure, figcaption {
	display: block;
}

head, title, script, style, meta, link, template, noscript {
	display: none;
}

a, span, em, strong, b, i, u, s, code, small, big, abbr, cite, q, sub, sup,
label, font, tt, var, kbd, samp, strike, mark {
	display: inline;
}

body {
	color: black;
	font-size: 15px;
	line-height: 1.25em;
	padding: 8px;
}

h1 { font-size: 2.1em; margin: 0.67em 0; font-weight: bold; }
h2 { font-size: 1.5em; margin: 0.83em 0; font-weight: bold; }
h3 { font-size: 1.17em; margin: 1em 0; font-weight: bold; }
h4, h5, h6 { margin: 1.33em 0; font-weight: bold; }

p { font-size: 1em; margin: 1em 0; }
ul, ol { margin: 1em 0; padding-left: 40px; }
dl { margin: 1em 0; }
dd { margin-left: 40px; }
blockquote { margin: 1em 40px; }
hr { margin: 0.5em 0; }

a { color: rgb(0, 0, 238); text-decoration: underline; }
u { text-decoration: underline; }
address, i, em, cite, var { font-style: italic; }
strong, b { font-weight: bold; }
`
