package site

// pageTemplate is the Go html/template for each documentation page.
const pageTemplate = `<!DOCTYPE html>
<html lang="en" data-theme="light">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}} · {{.SiteTitle}}</title>
  <link rel="stylesheet" href="{{.BasePath}}style.css">
</head>
<body data-route="{{.Path}}" data-base="{{.BasePath}}">
  <nav class="sidebar" id="sidebar">
    <div class="sidebar-header">
      <a href="{{.BasePath}}index.html" class="site-title">{{.SiteTitle}}</a>
      <input type="text" id="search-input" placeholder="Search docs..." autocomplete="off">
      <div class="search-results" id="search-results"></div>
    </div>
    <div class="sidebar-nav" id="sidebar-nav">
      {{.NavHTML}}
    </div>
  </nav>
  <div class="sidebar-overlay" id="sidebar-overlay"></div>
  <main class="content">
    <div class="top-bar">
      <button class="menu-toggle" id="menu-toggle" aria-label="Toggle sidebar">
        <svg width="24" height="24" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2">
          <line x1="3" y1="6" x2="21" y2="6"/><line x1="3" y1="12" x2="21" y2="12"/><line x1="3" y1="18" x2="21" y2="18"/>
        </svg>
      </button>
      <span class="top-bar-title">{{.Title}}</span>
      <button class="theme-toggle" id="theme-toggle" aria-label="Toggle theme">
        <svg class="sun-icon" width="20" height="20" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2">
          <circle cx="12" cy="12" r="5"/><line x1="12" y1="1" x2="12" y2="3"/><line x1="12" y1="21" x2="12" y2="23"/><line x1="4.22" y1="4.22" x2="5.64" y2="5.64"/><line x1="18.36" y1="18.36" x2="19.78" y2="19.78"/><line x1="1" y1="12" x2="3" y2="12"/><line x1="21" y1="12" x2="23" y2="12"/><line x1="4.22" y1="19.78" x2="5.64" y2="18.36"/><line x1="18.36" y1="5.64" x2="19.78" y2="4.22"/>
        </svg>
        <svg class="moon-icon" width="20" height="20" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2">
          <path d="M21 12.79A9 9 0 1 1 11.21 3 7 7 0 0 0 21 12.79z"/>
        </svg>
      </button>
    </div>
    <article class="page-content">
      {{.Content}}
    </article>
  </main>
  <script src="{{.BasePath}}script.js"></script>
</body>
</html>`

// cssContent is the full CSS for the documentation site.
const cssContent = `/* ============ CSS Variables ============ */
:root {
  --bg: #ffffff;
  --text: #1f2328;
  --text-muted: #636c76;
  --sidebar-bg: #f6f8fa;
  --sidebar-width: 280px;
  --border: #d1d9e0;
  --accent: #0969da;
  --accent-soft: rgba(9, 105, 218, 0.1);
  --code-bg: #f6f8fa;
  --code-border: #d1d9e0;
  --shadow: rgba(31, 35, 40, 0.12);
}

[data-theme="dark"] {
  --bg: #0d1117;
  --text: #e6edf3;
  --text-muted: #8d96a0;
  --sidebar-bg: #161b22;
  --border: #30363d;
  --accent: #4493f8;
  --accent-soft: rgba(68, 147, 248, 0.15);
  --code-bg: #161b22;
  --code-border: #30363d;
  --shadow: rgba(0, 0, 0, 0.4);
}

/* ============ Base ============ */
* {
  margin: 0;
  padding: 0;
  box-sizing: border-box;
}

html {
  scroll-behavior: smooth;
}

body {
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Helvetica, Arial, sans-serif;
  font-size: 16px;
  line-height: 1.6;
  color: var(--text);
  background: var(--bg);
}

/* ============ Sidebar ============ */
.sidebar {
  position: fixed;
  top: 0;
  left: 0;
  bottom: 0;
  width: var(--sidebar-width);
  background: var(--sidebar-bg);
  border-right: 1px solid var(--border);
  overflow-y: auto;
  z-index: 100;
}

.sidebar-header {
  position: relative;
  padding: 16px;
  border-bottom: 1px solid var(--border);
}

.site-title {
  display: block;
  font-size: 18px;
  font-weight: 600;
  color: var(--text);
  text-decoration: none;
  margin-bottom: 12px;
  overflow: hidden;
  text-overflow: ellipsis;
  white-space: nowrap;
}

#search-input {
  width: 100%;
  padding: 6px 10px;
  font-size: 14px;
  color: var(--text);
  background: var(--bg);
  border: 1px solid var(--border);
  border-radius: 6px;
  outline: none;
}

#search-input:focus {
  border-color: var(--accent);
}

/* ============ Search Results ============ */
.search-results {
  display: none;
  position: absolute;
  left: 16px;
  right: 16px;
  top: 100%;
  max-height: 380px;
  overflow-y: auto;
  background: var(--bg);
  border: 1px solid var(--border);
  border-radius: 6px;
  box-shadow: 0 8px 24px var(--shadow);
  z-index: 200;
}

.search-results.visible {
  display: block;
}

.search-result {
  display: block;
  padding: 8px 12px;
  text-decoration: none;
  border-bottom: 1px solid var(--border);
}

.search-result:last-child {
  border-bottom: none;
}

.search-result:hover {
  background: var(--accent-soft);
}

.search-result-title {
  font-size: 13px;
  font-weight: 600;
  color: var(--accent);
}

.search-result-snippet {
  font-size: 12px;
  color: var(--text-muted);
  overflow: hidden;
  display: -webkit-box;
  -webkit-line-clamp: 2;
  -webkit-box-orient: vertical;
}

.search-empty {
  padding: 10px 12px;
  font-size: 13px;
  color: var(--text-muted);
}

/* ============ Navigation ============ */
.sidebar-nav {
  padding: 8px 0 24px;
}

.nav-list {
  list-style: none;
}

.nav-item > a {
  display: block;
  padding: 6px 16px;
  font-size: 14px;
  color: var(--text);
  text-decoration: none;
  overflow: hidden;
  text-overflow: ellipsis;
  white-space: nowrap;
}

.nav-item > a:hover {
  background: var(--accent-soft);
}

.nav-item.active > a {
  color: var(--accent);
  font-weight: 600;
  background: var(--accent-soft);
}

.anchor-list {
  list-style: none;
  margin: 2px 0 6px;
  border-left: 1px solid var(--border);
  margin-left: 22px;
}

.anchor-item a {
  display: block;
  padding: 3px 12px;
  font-size: 13px;
  color: var(--text-muted);
  text-decoration: none;
  border-left: 2px solid transparent;
  margin-left: -1px;
  overflow: hidden;
  text-overflow: ellipsis;
  white-space: nowrap;
}

.anchor-item a:hover {
  color: var(--text);
}

.anchor-item.active > a {
  color: var(--accent);
  border-left-color: var(--accent);
}

/* ============ Content ============ */
.content {
  margin-left: var(--sidebar-width);
  min-height: 100vh;
}

.top-bar {
  display: flex;
  align-items: center;
  gap: 12px;
  padding: 10px 24px;
  border-bottom: 1px solid var(--border);
}

.top-bar-title {
  flex: 1;
  font-size: 14px;
  font-weight: 600;
  color: var(--text-muted);
  overflow: hidden;
  text-overflow: ellipsis;
  white-space: nowrap;
}

.menu-toggle {
  display: none;
  background: none;
  border: none;
  color: var(--text);
  cursor: pointer;
  padding: 4px;
}

.theme-toggle {
  background: none;
  border: none;
  color: var(--text);
  cursor: pointer;
  padding: 4px;
}

.theme-toggle .moon-icon {
  display: none;
}

[data-theme="dark"] .theme-toggle .sun-icon {
  display: none;
}

[data-theme="dark"] .theme-toggle .moon-icon {
  display: inline;
}

.page-content {
  max-width: 860px;
  margin: 0 auto;
  padding: 32px 24px 96px;
}

/* ============ Typography ============ */
.page-content h1 {
  font-size: 32px;
  font-weight: 600;
  line-height: 1.25;
  padding-bottom: 8px;
  margin-bottom: 16px;
  border-bottom: 1px solid var(--border);
}

.page-content h2 {
  font-size: 24px;
  font-weight: 600;
  line-height: 1.25;
  margin-top: 32px;
  margin-bottom: 12px;
  padding-bottom: 6px;
  border-bottom: 1px solid var(--border);
}

.page-content h3 {
  font-size: 19px;
  font-weight: 600;
  margin-top: 24px;
  margin-bottom: 10px;
}

.page-content h4 {
  font-size: 16px;
  font-weight: 600;
  margin-top: 20px;
  margin-bottom: 8px;
}

.page-content [id] {
  scroll-margin-top: 16px;
}

.page-content p {
  margin-bottom: 14px;
}

.page-content a {
  color: var(--accent);
  text-decoration: none;
}

.page-content a:hover {
  text-decoration: underline;
}

.page-content ul,
.page-content ol {
  margin: 0 0 14px 26px;
}

.page-content li {
  margin-bottom: 4px;
}

.page-content img {
  max-width: 100%;
  border-radius: 6px;
}

.page-content hr {
  height: 1px;
  border: none;
  background: var(--border);
  margin: 24px 0;
}

/* ============ Code ============ */
.page-content code {
  font-family: ui-monospace, SFMono-Regular, "SF Mono", Menlo, Consolas, monospace;
  font-size: 85%;
  background: var(--code-bg);
  border: 1px solid var(--code-border);
  border-radius: 4px;
  padding: 1px 5px;
}

.page-content pre {
  position: relative;
  background: var(--code-bg);
  border: 1px solid var(--code-border);
  border-radius: 6px;
  padding: 14px;
  margin-bottom: 16px;
  overflow-x: auto;
  font-size: 14px;
  line-height: 1.45;
}

.page-content pre code {
  background: none;
  border: none;
  padding: 0;
  font-size: 100%;
}

.copy-btn {
  position: absolute;
  top: 8px;
  right: 8px;
  padding: 3px 8px;
  font-size: 12px;
  color: var(--text-muted);
  background: var(--bg);
  border: 1px solid var(--border);
  border-radius: 4px;
  cursor: pointer;
  opacity: 0;
  transition: opacity 0.15s;
}

.page-content pre:hover .copy-btn {
  opacity: 1;
}

.copy-btn:hover {
  color: var(--text);
}

/* ============ Tables & Quotes ============ */
.page-content table {
  border-collapse: collapse;
  margin-bottom: 16px;
  width: 100%;
}

.page-content th,
.page-content td {
  border: 1px solid var(--border);
  padding: 6px 12px;
  text-align: left;
}

.page-content th {
  background: var(--sidebar-bg);
  font-weight: 600;
}

.page-content blockquote {
  border-left: 3px solid var(--border);
  padding-left: 14px;
  color: var(--text-muted);
  margin-bottom: 14px;
}

/* ============ Responsive ============ */
.sidebar-overlay {
  display: none;
  position: fixed;
  inset: 0;
  background: rgba(0, 0, 0, 0.4);
  z-index: 90;
}

@media (max-width: 900px) {
  .sidebar {
    transform: translateX(-100%);
    transition: transform 0.2s ease;
  }

  .sidebar.open {
    transform: translateX(0);
  }

  .sidebar-overlay.visible {
    display: block;
  }

  .content {
    margin-left: 0;
  }

  .menu-toggle {
    display: block;
  }
}

/* ============ Scrollbar ============ */
.sidebar::-webkit-scrollbar {
  width: 8px;
}

.sidebar::-webkit-scrollbar-thumb {
  background: var(--border);
  border-radius: 4px;
}
`

// jsContent is the client runtime: theme and sidebar toggles, search,
// code copy buttons, active-section tracking, and the live preview
// socket used by the serve command.
const jsContent = `(function () {
  "use strict";

  // Headings activate once their top edge passes this many pixels from
  // the viewport top. Keep in sync with the server-side tracker.
  var SCROLL_OFFSET = 26;

  var basePath = document.body.getAttribute("data-base") || "";
  var routePath = document.body.getAttribute("data-route") || "/";

  /* ============ Theme ============ */
  function setTheme(dark) {
    document.documentElement.setAttribute("data-theme", dark ? "dark" : "light");
  }

  function initTheme() {
    var stored = null;
    try { stored = localStorage.getItem("docsite-theme"); } catch (e) {}
    var dark = stored
      ? stored === "dark"
      : window.matchMedia && window.matchMedia("(prefers-color-scheme: dark)").matches;
    setTheme(dark);

    var toggle = document.getElementById("theme-toggle");
    if (!toggle) return;
    toggle.addEventListener("click", function () {
      dark = document.documentElement.getAttribute("data-theme") !== "dark";
      setTheme(dark);
      try { localStorage.setItem("docsite-theme", dark ? "dark" : "light"); } catch (e) {}
    });
  }

  /* ============ Sidebar (mobile) ============ */
  function initSidebar() {
    var sidebar = document.getElementById("sidebar");
    var toggle = document.getElementById("menu-toggle");
    var overlay = document.getElementById("sidebar-overlay");
    if (!sidebar || !toggle || !overlay) return;

    toggle.addEventListener("click", function () {
      sidebar.classList.toggle("open");
      overlay.classList.toggle("visible");
    });
    overlay.addEventListener("click", function () {
      sidebar.classList.remove("open");
      overlay.classList.remove("visible");
    });
  }

  /* ============ Active section tracking ============ */
  var anchorItems = Array.prototype.slice.call(
    document.querySelectorAll("#sidebar-nav .anchor-list li[data-anchor]")
  );
  var anchorIds = anchorItems.map(function (li) {
    return li.getAttribute("data-anchor");
  });
  var missingWarned = {};

  function computeActive() {
    if (anchorIds.length === 0) return null;
    var active = anchorIds[0];
    for (var i = 0; i < anchorIds.length; i++) {
      var id = anchorIds[i];
      var el = document.getElementById(id);
      if (!el) {
        if (!missingWarned[id]) {
          missingWarned[id] = true;
          if (window.console && console.warn) {
            console.warn("docsite: nav lists #" + id + " but the page has no such element");
          }
        }
        continue;
      }
      if (el.getBoundingClientRect().top - SCROLL_OFFSET < 0) {
        active = id;
      }
    }
    return active;
  }

  function applyActive(id) {
    for (var i = 0; i < anchorItems.length; i++) {
      if (anchorItems[i].getAttribute("data-anchor") === id) {
        anchorItems[i].classList.add("active");
      } else {
        anchorItems[i].classList.remove("active");
      }
    }
  }

  var frameQueued = false;
  function onScroll() {
    if (frameQueued) return;
    frameQueued = true;
    window.requestAnimationFrame(function () {
      frameQueued = false;
      var active = computeActive();
      if (active !== null) {
        applyActive(active);
        sendScroll();
      }
    });
  }

  /* ============ Search ============ */
  var searchInput = document.getElementById("search-input");
  var searchResults = document.getElementById("search-results");
  var searchIndex = null;
  var searchTimer = null;

  function routeHref(path, fragment) {
    var trimmed = (path || "").replace(/^\/+|\/+$/g, "");
    var href = basePath + (trimmed === "" ? "index.html" : trimmed + "/index.html");
    if (fragment) href += "#" + fragment;
    return href;
  }

  function escapeHtml(s) {
    var div = document.createElement("div");
    div.appendChild(document.createTextNode(s));
    return div.innerHTML;
  }

  function hideResults() {
    if (!searchResults) return;
    searchResults.classList.remove("visible");
    searchResults.innerHTML = "";
  }

  function renderResults(items) {
    if (!items || items.length === 0) {
      searchResults.innerHTML = '<div class="search-empty">No results</div>';
      searchResults.classList.add("visible");
      return;
    }
    var html = "";
    for (var i = 0; i < items.length; i++) {
      var it = items[i];
      var label = it.section ? it.title + " › " + it.section : it.title;
      html += '<a class="search-result" href="' + routeHref(it.path, it.fragment) + '">' +
        '<div class="search-result-title">' + escapeHtml(label) + "</div>" +
        (it.snippet ? '<div class="search-result-snippet">' + escapeHtml(it.snippet) + "</div>" : "") +
        "</a>";
    }
    searchResults.innerHTML = html;
    searchResults.classList.add("visible");
  }

  function snippetFor(entry, q) {
    var text = entry.content || "";
    var at = text.toLowerCase().indexOf(q);
    if (at < 0) return text.slice(0, 120);
    var start = Math.max(0, at - 40);
    return (start > 0 ? "…" : "") + text.slice(start, at + 80) + "…";
  }

  function localSearch(query) {
    if (!searchIndex) return [];
    var q = query.toLowerCase();
    var scored = [];
    for (var i = 0; i < searchIndex.length; i++) {
      var e = searchIndex[i];
      var score = 0;
      if (e.title && e.title.toLowerCase().indexOf(q) !== -1) score += 3;
      if (e.section && e.section.toLowerCase().indexOf(q) !== -1) score += 2;
      if (e.content && e.content.toLowerCase().indexOf(q) !== -1) score += 1;
      if (score > 0) scored.push({ score: score, entry: e });
    }
    scored.sort(function (a, b) { return b.score - a.score; });

    var out = [];
    for (var j = 0; j < scored.length && j < 8; j++) {
      var entry = scored[j].entry;
      out.push({
        path: entry.path,
        fragment: entry.fragment,
        title: entry.title,
        section: entry.section,
        snippet: snippetFor(entry, q)
      });
    }
    return out;
  }

  // Prefer the preview server's search endpoint; fall back to the
  // bundled index when the site is served statically.
  function runSearch(query) {
    fetch("/api/search", {
      method: "POST",
      headers: { "Content-Type": "application/json" },
      body: JSON.stringify({ query: query, limit: 8 })
    }).then(function (resp) {
      if (!resp.ok) throw new Error("search unavailable");
      return resp.json();
    }).then(function (data) {
      renderResults(data.results || []);
    }).catch(function () {
      renderResults(localSearch(query));
    });
  }

  function initSearch() {
    if (!searchInput || !searchResults) return;

    fetch(basePath + "search-index.json")
      .then(function (resp) { return resp.ok ? resp.json() : null; })
      .then(function (data) { searchIndex = data; })
      .catch(function () {});

    searchInput.addEventListener("input", function () {
      var query = searchInput.value.trim();
      if (searchTimer) clearTimeout(searchTimer);
      if (query.length < 2) {
        hideResults();
        return;
      }
      searchTimer = setTimeout(function () { runSearch(query); }, 150);
    });
    searchInput.addEventListener("keydown", function (ev) {
      if (ev.key === "Escape") {
        hideResults();
        searchInput.blur();
      }
    });
    document.addEventListener("click", function (ev) {
      if (ev.target !== searchInput && !searchResults.contains(ev.target)) {
        hideResults();
      }
    });
  }

  /* ============ Code copy buttons ============ */
  function initCopyButtons() {
    var blocks = document.querySelectorAll(".page-content pre");
    for (var i = 0; i < blocks.length; i++) {
      (function (pre) {
        var btn = document.createElement("button");
        btn.className = "copy-btn";
        btn.textContent = "Copy";
        btn.addEventListener("click", function () {
          var code = pre.querySelector("code");
          var text = code ? code.textContent : pre.textContent;
          navigator.clipboard.writeText(text).then(function () {
            btn.textContent = "Copied!";
            setTimeout(function () { btn.textContent = "Copy"; }, 1500);
          });
        });
        pre.appendChild(btn);
      })(blocks[i]);
    }
  }

  /* ============ Live preview socket ============ */
  var socket = null;
  var lastSent = 0;

  function sendScroll() {
    if (!socket || socket.readyState !== 1) return;
    var now = Date.now();
    if (now - lastSent < 100) return;
    lastSent = now;

    var tops = {};
    for (var i = 0; i < anchorIds.length; i++) {
      var el = document.getElementById(anchorIds[i]);
      if (el) tops[anchorIds[i]] = el.getBoundingClientRect().top;
    }
    socket.send(JSON.stringify({ type: "scroll", tops: tops }));
  }

  function connectLive() {
    if (location.protocol !== "http:" && location.protocol !== "https:") return;
    if (!window.WebSocket) return;

    var proto = location.protocol === "https:" ? "wss://" : "ws://";
    var sock;
    try {
      sock = new WebSocket(proto + location.host + "/ws");
    } catch (e) {
      return;
    }
    sock.onopen = function () {
      socket = sock;
      sock.send(JSON.stringify({ type: "hello", path: routePath }));
      lastSent = 0;
      sendScroll();
    };
    sock.onmessage = function (ev) {
      var msg;
      try { msg = JSON.parse(ev.data); } catch (e) { return; }
      if (msg.type === "reload") {
        location.reload();
      } else if (msg.type === "active" && msg.anchor) {
        applyActive(msg.anchor);
      }
    };
    sock.onclose = function () { socket = null; };
    sock.onerror = function () {};
  }

  /* ============ Init ============ */
  initTheme();
  initSidebar();
  initSearch();
  initCopyButtons();

  if (anchorIds.length > 0) {
    window.addEventListener("scroll", onScroll, { passive: true });
    window.addEventListener("resize", onScroll);
    applyActive(computeActive());
  }

  connectLive();
})();
`
