package sqlinline

const QInsertContact = `--sql 84230390-2535-4bbe-9d62-792e398082c7
insert into contacts(id, name, email, message, country, date)
values ($1::uuid, $2::text, $3::text, $4::text, nullif($5::text, ''), $6::timestamptz);
`

const QListContacts = `--sql 5a392629-c97f-4b29-8cf0-2bcd766a9022
select id::text, name, email, message, coalesce(country, ''), date
from contacts
order by date desc, id desc;
`
