package app

import "html/template"

// heroHTML returns the introduction shown above the tool grid on the home page.
func heroHTML() template.HTML {
	return `
<h1>Dev-Tools Mastery Hub</h1>
<p class="tagline">Master the essential tools of modern software development, testing and operations.</p>
<ul class="highlights">
  <li>📚 Step-by-step tutorials written for practitioners</li>
  <li>📋 Copy-ready commands and code samples</li>
  <li>🔍 Find a tool instantly with the search box</li>
</ul>`
}
